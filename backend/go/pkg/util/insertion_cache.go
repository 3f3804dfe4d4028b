package util

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// CacheConfig 用于配置插入序缓存的行为。
type CacheConfig struct {
	// Capacity 是缓存的最大条目数量，必须大于 0。
	Capacity int
	// TTL 是条目的存活时间。如果为 0，则条目永不过期。
	// 过期检查在读取时惰性进行，与条目是否被访问过无关。
	TTL time.Duration
}

// entry 结构体用于存储链表节点中的实际数据。
type entry[K comparable, V any] struct {
	key        K
	value      V
	insertedAt time.Time // 条目的插入时间
}

// InsertionCache 是一个支持泛型、线程安全的插入序缓存。
// 与 LRU 缓存不同，读取不会刷新条目的位置：容量满时总是淘汰
// 最早插入的那一条，从而保证淘汰顺序是确定性的。
type InsertionCache[K comparable, V any] struct {
	config CacheConfig
	ll     *list.List // 按插入时间排列，队首是最新插入的条目
	cache  map[K]*list.Element
	lock   sync.Mutex
	now    func() time.Time // 可在测试中替换的时钟
}

// NewInsertionCache 使用指定的配置创建一个插入序缓存实例。
func NewInsertionCache[K comparable, V any](config CacheConfig) (*InsertionCache[K, V], error) {
	if config.Capacity <= 0 {
		return nil, fmt.Errorf("必须设置大于 0 的 Capacity")
	}
	return &InsertionCache[K, V]{
		config: config,
		ll:     list.New(),
		cache:  make(map[K]*list.Element),
		now:    time.Now,
	}, nil
}

// Get 方法根据键获取一个值。
// 已超过 TTL 的条目被视为未命中，并在此时从缓存中移除（被动淘汰）。
func (c *InsertionCache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.cache[key]
	if !ok {
		var zeroV V
		return zeroV, false
	}

	ent := element.Value.(*entry[K, V])
	if c.config.TTL > 0 && c.now().Sub(ent.insertedAt) >= c.config.TTL {
		c.removeElement(element)
		var zeroV V
		return zeroV, false
	}

	return ent.value, true
}

// Put 方法向缓存中添加或更新一个键值对。
// 更新已有键会刷新其插入时间。容量超限时淘汰最早插入的条目。
func (c *InsertionCache[K, V]) Put(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if element, ok := c.cache[key]; ok {
		// 更新现有条目：刷新值与插入时间，并移到队首。
		ent := element.Value.(*entry[K, V])
		ent.value = value
		ent.insertedAt = c.now()
		c.ll.MoveToFront(element)
	} else {
		element := c.ll.PushFront(&entry[K, V]{
			key:        key,
			value:      value,
			insertedAt: c.now(),
		})
		c.cache[key] = element
	}

	// 淘汰检查与插入在同一把锁内完成，保证并发插入不会突破容量上限。
	for c.ll.Len() > c.config.Capacity {
		if back := c.ll.Back(); back != nil {
			c.removeElement(back)
		}
	}
}

// Len 返回当前缓存中的条目数量。
func (c *InsertionCache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.ll.Len()
}

// removeElement 是一个内部辅助函数，用于从链表和map中移除元素。
// 此方法假设已持有锁。
func (c *InsertionCache[K, V]) removeElement(e *list.Element) {
	c.ll.Remove(e)
	ent := e.Value.(*entry[K, V])
	delete(c.cache, ent.key)
}
