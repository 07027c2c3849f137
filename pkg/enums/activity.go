package enums

// ActivityAction names an entry in the admin activity feed.
type ActivityAction string

const (
	ActivityOrderCreated       ActivityAction = "order.created"
	ActivityOrderStatusChanged ActivityAction = "order.status_changed"
	ActivityOrderNotesUpdated  ActivityAction = "order.notes_updated"
	ActivityProductCreated     ActivityAction = "product.created"
	ActivityProductUpdated     ActivityAction = "product.updated"
	ActivityContentCreated     ActivityAction = "content.created"
	ActivityContentUpdated     ActivityAction = "content.updated"
	ActivityContentDeleted     ActivityAction = "content.deleted"
	ActivityAdminLogin         ActivityAction = "admin.login"
)

// ActivityEntity identifies the record type an activity entry points at.
type ActivityEntity string

const (
	EntityOrder           ActivityEntity = "order"
	EntityProduct         ActivityEntity = "product"
	EntityHeroSlide       ActivityEntity = "hero_slide"
	EntityFashionCarousel ActivityEntity = "fashion_carousel"
	EntityCollectionStack ActivityEntity = "collection_stack"
	EntityAdmin           ActivityEntity = "admin"
)
