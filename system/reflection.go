package system

import (
	"fmt"
	"sort"
	"sync"
)

// ---------------------------------------------------------------------------
// ClassDB: process-wide class registry
// ---------------------------------------------------------------------------

// ClassDB maps fully qualified class names to their descriptors.
//
// Registration runs during the single-threaded startup phase (package
// and per-class initializers); after that the database is read-only
// and lookups from any goroutine need no coordination by the caller.
// The internal lock exists so that a database queried before every
// class has registered still observes a consistent table.
type ClassDB struct {
	mu      sync.RWMutex
	classes map[string]*ClassData
}

// NewClassDB creates an empty class database. Most callers use the
// package-level default; independent databases exist for tests.
func NewClassDB() *ClassDB {
	return &ClassDB{classes: make(map[string]*ClassData)}
}

// Register creates and inserts a descriptor for name, whose parent
// must already be registered. parentName is empty only for a root
// class. Registering a name twice is a programming error and panics:
// a class announces itself exactly once.
func (db *ClassDB) Register(name, parentName string) *ClassData {
	if name == "" {
		panic("system: class name must not be empty")
	}

	var parent *ClassData
	if parentName != "" {
		parent = db.Lookup(parentName)
		if parent == nil {
			panic(fmt.Sprintf("system: parent class %s of %s is not registered", parentName, name))
		}
	}

	c := &ClassData{
		db:         db,
		name:       name,
		parent:     parent,
		methods:    make(map[string]*MethodBind),
		properties: make(map[string]*PropertyBind),
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, exists := db.classes[name]; exists {
		panic(fmt.Sprintf("system: class %s registered twice", name))
	}
	db.classes[name] = c
	return c
}

// Lookup returns the descriptor for name, or nil.
func (db *ClassDB) Lookup(name string) *ClassData {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.classes[name]
}

// Has returns true if a class with this name is registered.
func (db *ClassDB) Has(name string) bool {
	return db.Lookup(name) != nil
}

// All returns every registered descriptor, ordered by name.
func (db *ClassDB) All() []*ClassData {
	db.mu.RLock()
	result := make([]*ClassData, 0, len(db.classes))
	for _, c := range db.classes {
		result = append(result, c)
	}
	db.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].name < result[j].name })
	return result
}

// Len returns the number of registered classes.
func (db *ClassDB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.classes)
}

// ---------------------------------------------------------------------------
// Default database and root classes
// ---------------------------------------------------------------------------

// Fully qualified names of the engine root classes, registered
// automatically. All three are abstract roles: concrete classes embed
// ManualObject or ReferencedObject and register themselves as
// children.
const (
	ObjectClassName           = "::Engine::Object"
	ManualObjectClassName     = "::Engine::ManualObject"
	ReferencedObjectClassName = "::Engine::ReferencedObject"
)

var defaultDB = func() *ClassDB {
	db := NewClassDB()
	db.Register(ObjectClassName, "")
	db.Register(ManualObjectClassName, ObjectClassName)
	db.Register(ReferencedObjectClassName, ObjectClassName)
	return db
}()

// DefaultClassDB returns the process-wide class database.
func DefaultClassDB() *ClassDB { return defaultDB }

// RegisterClass registers a class in the default database. Typically
// called from a per-class init function.
func RegisterClass(name, parentName string) *ClassData {
	return defaultDB.Register(name, parentName)
}

// GetClass returns the descriptor for name from the default database,
// or nil if no such class is registered.
func GetClass(name string) *ClassData {
	return defaultDB.Lookup(name)
}

// IsClassExists reports whether name is registered in the default
// database.
func IsClassExists(name string) bool {
	return defaultDB.Has(name)
}
