package database

import (
	"context"

	"github.com/rpupo63/agency-portfolio-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	adminRepo           Collection[models.Admin]
	serviceRepo         Collection[models.Service]
	serviceCategoryRepo Collection[models.ServiceCategory]
	projectRepo         Collection[models.Project]
	projectCategoryRepo Collection[models.ProjectCategory]
	blogRepo            Collection[models.Blog]
	contactQueryRepo    Collection[models.ContactQuery]

	sql *gorm.DB
}

// New initializes a new Database struct with each collection using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		adminRepo:           newGormCollection[models.Admin](db, "email", false),
		serviceRepo:         newGormCollection[models.Service](db, "slug", false),
		serviceCategoryRepo: newGormCollection[models.ServiceCategory](db, "category_slug", false),
		projectRepo:         newGormCollection[models.Project](db, "slug", true),
		projectCategoryRepo: newGormCollection[models.ProjectCategory](db, "category_slug", false),
		blogRepo:            newGormCollection[models.Blog](db, "slug", true),
		contactQueryRepo:    newGormCollection[models.ContactQuery](db, "", true),
		sql:                 db,
	}
}

// NewInMemory backs every collection with process memory. Used with
// DB_TYPE=memory and in tests.
func NewInMemory() Database {
	return Database{
		adminRepo:           newMemoryCollection[models.Admin](true, false),
		serviceRepo:         newMemoryCollection[models.Service](true, false),
		serviceCategoryRepo: newMemoryCollection[models.ServiceCategory](true, false),
		projectRepo:         newMemoryCollection[models.Project](true, true),
		projectCategoryRepo: newMemoryCollection[models.ProjectCategory](true, false),
		blogRepo:            newMemoryCollection[models.Blog](true, true),
		contactQueryRepo:    newMemoryCollection[models.ContactQuery](false, true),
	}
}

// Accessor methods for each collection

func (d Database) AdminRepo() Collection[models.Admin] {
	return d.adminRepo
}

func (d Database) ServiceRepo() Collection[models.Service] {
	return d.serviceRepo
}

func (d Database) ServiceCategoryRepo() Collection[models.ServiceCategory] {
	return d.serviceCategoryRepo
}

func (d Database) ProjectRepo() Collection[models.Project] {
	return d.projectRepo
}

func (d Database) ProjectCategoryRepo() Collection[models.ProjectCategory] {
	return d.projectCategoryRepo
}

func (d Database) BlogRepo() Collection[models.Blog] {
	return d.blogRepo
}

func (d Database) ContactQueryRepo() Collection[models.ContactQuery] {
	return d.contactQueryRepo
}

// SQL returns the underlying connection, or nil for the in-memory store.
func (d Database) SQL() *gorm.DB {
	return d.sql
}

// Ping checks the SQL connection; the in-memory store is always reachable.
func (d Database) Ping(ctx context.Context) error {
	if d.sql == nil {
		return nil
	}
	sqlDB, err := d.sql.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the SQL connection pool.
func (d Database) Close() error {
	if d.sql == nil {
		return nil
	}
	sqlDB, err := d.sql.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates the collection tables. No-op for the in-memory store.
func (d Database) Migrate() error {
	if d.sql == nil {
		return nil
	}
	return models.Migrate(d.sql)
}
