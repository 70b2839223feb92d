package hashring

import (
	"math/rand"
	"strconv"
	"testing"
)

func benchRing(b *testing.B, members, replicas int) *Ring[testNode] {
	b.Helper()
	ring, err := New[testNode](replicas, nil)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	for i := 0; i < members; i++ {
		ring.AddNode(testNode{
			HostName: "host-" + strconv.Itoa(i),
			IP:       "10.0." + strconv.Itoa(i/256) + "." + strconv.Itoa(i%256),
			Port:     uint32(50051 + i),
		})
	}
	return ring
}

func BenchmarkRing_GetNode(b *testing.B) {
	ring := benchRing(b, 16, 128)
	rng := rand.New(rand.NewSource(1))
	hashes := make([]uint64, 1024)
	for i := range hashes {
		hashes[i] = rng.Uint64()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ring.GetNode(hashes[i%len(hashes)])
	}
}

func BenchmarkRing_Locate(b *testing.B) {
	ring := benchRing(b, 16, 128)
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ring.Locate(keys[i%len(keys)])
	}
}

func BenchmarkRing_AddRemoveNode(b *testing.B) {
	ring := benchRing(b, 16, 128)
	node := testNode{HostName: "churn", IP: "10.1.0.1", Port: 60000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ring.AddNode(node)
		ring.RemoveNode(node)
	}
}
