package com

import (
	"errors"
	"sync"
	"testing"
)

func TestMapFind(t *testing.T) {
	m := NewMap[string, int]()
	m.Put("a", 1)

	if v, err := m.Find("a"); err != nil || v != 1 {
		t.Errorf("find: %v %v", v, err)
	}
	if _, err := m.Find("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	// the zero key is never stored
	if _, err := m.Find(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("zero key: %v", err)
	}
}

func TestMapRemove(t *testing.T) {
	m := NewMap[string, int]()
	m.Put("a", 1)
	m.RemoveByKey("a")
	if m.Has("a") || !m.IsEmpty() {
		t.Error("remove failed")
	}
}

func TestMapFindBy(t *testing.T) {
	m := NewMap[string, int]()
	m.Put("a", 1)
	m.Put("b", 2)
	if v, err := m.FindBy(func(v int) bool { return v > 1 }); err != nil || v != 2 {
		t.Errorf("findBy: %v %v", v, err)
	}
	if _, err := m.FindBy(func(v int) bool { return v > 9 }); !errors.Is(err, ErrNotFound) {
		t.Errorf("findBy miss: %v", err)
	}
}

func TestMapConcurrentAccess(t *testing.T) {
	m := NewMap[int, int]()
	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Put(i, i)
			m.Find(i)
			m.RemoveByKey(i)
		}(i)
	}
	wg.Wait()
	if !m.IsEmpty() {
		t.Errorf("leftover entries: %v", m.Len())
	}
}

func TestUid(t *testing.T) {
	u := NewUid()
	if !ValidUid(u) {
		t.Errorf("invalid uid: %v", u)
	}
	if ValidUid("nope") {
		t.Error("garbage accepted")
	}
	if short := u.Short(); len(short) != 7 {
		t.Errorf("short form: %q", short)
	}
	if Uid("ab").Short() != "ab" {
		t.Error("tiny uid mangled")
	}
}
