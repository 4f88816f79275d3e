// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lru provides a size-bounded cache safe for concurrent use.
package lru

import (
	"container/list"
	"sync"
)

// Cache keeps the most recently used entries, up to a fixed count.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	cache    map[K]*list.Element
	priority *list.List
	maxSize  int
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

func New[K comparable, V any](size int) *Cache[K, V] {
	if size < 1 {
		size = 1
	}
	return &Cache[K, V]{
		maxSize:  size,
		priority: list.New(),
		cache:    make(map[K]*list.Element),
	}
}

// Put stores a value, evicting the least recently used entry when full.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.cache[key]; ok {
		e.Value = entry[K, V]{key: key, value: value}
		c.priority.MoveToFront(e)
		return
	}
	if len(c.cache) >= c.maxSize {
		last := c.priority.Remove(c.priority.Back())
		delete(c.cache, last.(entry[K, V]).key)
	}
	c.cache[key] = c.priority.PushFront(entry[K, V]{key: key, value: value})
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.cache[key]; ok {
		c.priority.MoveToFront(e)
		return e.Value.(entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

func (c *Cache[K, V]) Del(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.cache[key]; ok {
		delete(c.cache, key)
		c.priority.Remove(e)
	}
}

func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
