package component

import (
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
)

var (
	ErrEntityNotAlive       = eris.New("ecs: entity not alive")
	ErrNilComponent         = eris.New("ecs: component is nil")
	ErrInvalidComponentKind = eris.New("ecs: invalid component kind")
	ErrInvalidTag           = eris.New("ecs: invalid tag")
)

// Kind is the untyped view of a component kind, used by multi-component queries.
type Kind interface {
	ID() ComponentID
}

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

type ComponentID uint32

var nextComponentID atomic.Uint32

// Tag is a data-less marker attached to entities. Tags are interned by name so
// scene files and code refer to the same marker.
type Tag struct {
	id   TagID
	name string
}

type TagID uint32

func (t Tag) ID() TagID {
	return t.id
}

func (t Tag) Name() string {
	return t.name
}

func (t Tag) Valid() bool {
	return t.id != 0
}

func (t Tag) String() string {
	return t.name
}

var (
	tagsMu    sync.Mutex
	tagsByKey = map[string]Tag{}
	nextTagID TagID
)

// TagNamed returns the tag registered under name, creating it on first use.
func TagNamed(name string) Tag {
	tagsMu.Lock()
	defer tagsMu.Unlock()
	if t, ok := tagsByKey[name]; ok {
		return t
	}
	nextTagID++
	t := Tag{id: nextTagID, name: name}
	tagsByKey[name] = t
	return t
}
