package services

import "sync"

// snapshotHub 向所有订阅者推送完整快照。每次数据变化都发全量，不发增量，
// 与前端 onValue 式订阅的约定保持一致。
type snapshotHub struct {
	mutex       sync.Mutex
	nextID      int
	subscribers map[int]chan interface{}
}

func newSnapshotHub() *snapshotHub {
	return &snapshotHub{
		subscribers: make(map[int]chan interface{}),
	}
}

func (h *snapshotHub) Subscribe() (int, <-chan interface{}) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan interface{}, 8)
	h.subscribers[id] = ch
	return id, ch
}

func (h *snapshotHub) Unsubscribe(id int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if ch, exists := h.subscribers[id]; exists {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish 慢订阅者的缓冲满了就丢弃这次快照，后续变化会再发新的全量
func (h *snapshotHub) Publish(snapshot interface{}) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
