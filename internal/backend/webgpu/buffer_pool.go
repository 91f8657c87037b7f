//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPooledPerSize bounds how many idle buffers of one size are kept.
const maxPooledPerSize = 8

// resultUsage is the usage of every pooled buffer: written by a shader and
// copied out to a staging buffer.
const resultUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// bufferPool recycles shader output buffers by exact byte size. Activation
// layers see the same shapes batch after batch, so exact matches are common.
type bufferPool struct {
	device *wgpu.Device

	mu     sync.Mutex
	idle   map[uint64][]*wgpu.Buffer
	hits   uint64
	misses uint64
}

func newBufferPool(device *wgpu.Device) *bufferPool {
	return &bufferPool{device: device, idle: make(map[uint64][]*wgpu.Buffer)}
}

// acquire returns an idle buffer of exactly size bytes or creates one.
func (p *bufferPool) acquire(size uint64) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if list := p.idle[size]; len(list) > 0 {
		buf := list[len(list)-1]
		p.idle[size] = list[:len(list)-1]
		p.hits++
		return buf
	}
	p.misses++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: resultUsage,
		Size:  size,
	})
}

// release hands a buffer back, freeing it when the size bucket is full.
func (p *bufferPool) release(buf *wgpu.Buffer, size uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.idle[size]) >= maxPooledPerSize {
		buf.Release()
		return
	}
	p.idle[size] = append(p.idle[size], buf)
}

func (p *bufferPool) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for size, list := range p.idle {
		for _, buf := range list {
			buf.Release()
		}
		delete(p.idle, size)
	}
}

func (p *bufferPool) stats() (hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, list := range p.idle {
		pooled += len(list)
	}
	return p.hits, p.misses, pooled
}
