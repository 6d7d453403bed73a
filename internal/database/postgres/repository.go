package postgres

// Repository bundles the category and model repositories behind the
// database.Repository interface.
type Repository struct {
	*CategoryRepository
	*ModelRepository
}

// NewRepository creates the combined PostgreSQL repository.
func NewRepository(pool *Pool) *Repository {
	return &Repository{
		CategoryRepository: NewCategoryRepository(pool),
		ModelRepository:    NewModelRepository(pool),
	}
}
