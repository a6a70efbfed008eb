package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotHubDeliversFullSnapshot(t *testing.T) {
	hub := newSnapshotHub()
	_, ch := hub.Subscribe()

	snapshot := []string{"a", "b", "c"}
	hub.Publish(snapshot)

	select {
	case got := <-ch:
		// 订阅者收到的是整份快照，不是增量
		assert.Equal(t, snapshot, got)
	default:
		t.Fatal("订阅者没有收到快照")
	}
}

func TestSnapshotHubDeliversToAllSubscribers(t *testing.T) {
	hub := newSnapshotHub()
	_, ch1 := hub.Subscribe()
	_, ch2 := hub.Subscribe()

	hub.Publish("snapshot")

	assert.Equal(t, "snapshot", <-ch1)
	assert.Equal(t, "snapshot", <-ch2)
}

func TestSnapshotHubDropsWhenSubscriberIsSlow(t *testing.T) {
	hub := newSnapshotHub()
	_, ch := hub.Subscribe()

	// 订阅缓冲只有 8 个位置，多余的发布必须被丢弃而不是阻塞
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			hub.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("慢订阅者不应阻塞 Publish")
	}

	var received []interface{}
	for {
		select {
		case v := <-ch:
			received = append(received, v)
			continue
		default:
		}
		break
	}

	require.Len(t, received, 8)
	// 缓冲里留下的是最早的 8 份，后来的被丢弃
	for i, v := range received {
		assert.Equal(t, i, v)
	}
}

func TestSnapshotHubUnsubscribeClosesChannel(t *testing.T) {
	hub := newSnapshotHub()
	id, ch := hub.Subscribe()

	hub.Unsubscribe(id)

	_, ok := <-ch
	assert.False(t, ok, "退订后通道应被关闭")

	// 退订后的发布不会恐慌，也不会再投递
	hub.Publish("late")
}

func TestSnapshotHubUnsubscribeTwice(t *testing.T) {
	hub := newSnapshotHub()
	id, _ := hub.Subscribe()

	hub.Unsubscribe(id)
	// 重复退订是无害的
	hub.Unsubscribe(id)
}
