package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database migrated with the given models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	order  []string
}

// NewDb opens the shared database on first use and returns it afterwards.
func NewDb(models ...any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared&_pragma=foreign_keys(1)")
	if err != nil {
		panic(err)
	}
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	d := &Db{DbConn: dbConn, models: make(map[string]any, len(models))}
	for _, model := range models {
		s, err := schema.Parse(model, &sync.Map{}, dbConn.NamingStrategy)
		if err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", model, err.Error()))
		}
		if !dbConn.Migrator().HasTable(s.Table) {
			panic(fmt.Sprintf("table for model %T was not created", model))
		}
		d.models[s.Table] = model
		d.order = append(d.order, s.Table)
	}

	return d
}

// ClearDB deletes every row, children first.
func (d *Db) ClearDB() error {
	if err := d.DbConn.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return err
	}
	defer d.DbConn.Exec("PRAGMA foreign_keys = ON")

	for i := len(d.order) - 1; i >= 0; i-- {
		if err := d.DbConn.Exec(fmt.Sprintf("DELETE FROM %s", d.order[i])).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", d.order[i], err)
		}
	}
	return nil
}

// GetModel returns the model registered for a table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
