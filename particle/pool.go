package particle

import "iter"

const blockSize = 64

// Pool stores particles in fixed-size blocks. Indices stay stable until
// Compact is called and deleted slots are reused by later appends.
type Pool struct {
	blocks    []*[blockSize]Particle
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

// NewPool creates a pool with room for capacity particles before growing.
func NewPool(capacity int) *Pool {
	p := &Pool{}
	for i := 0; i < (capacity+blockSize-1)/blockSize; i++ {
		p.grow()
	}
	return p
}

func (p *Pool) grow() {
	p.blocks = append(p.blocks, new([blockSize]Particle))
	p.filled = append(p.filled, new([blockSize]bool))
}

// Append stores a particle and returns its index.
func (p *Pool) Append(item Particle) int {
	var index int
	if n := len(p.freeSlots); n > 0 {
		index = p.freeSlots[n-1]
		p.freeSlots = p.freeSlots[:n-1]
	} else {
		index = p.nextIndex
		p.nextIndex++
		if index/blockSize >= len(p.blocks) {
			p.grow()
		}
	}

	p.blocks[index/blockSize][index%blockSize] = item
	p.filled[index/blockSize][index%blockSize] = true
	p.count++
	return index
}

// Get returns a pointer to the particle at index, or nil if the slot is empty.
func (p *Pool) Get(index int) *Particle {
	if !p.Has(index) {
		return nil
	}
	return &p.blocks[index/blockSize][index%blockSize]
}

// Has reports whether index holds a particle.
func (p *Pool) Has(index int) bool {
	if index < 0 || index >= p.nextIndex {
		return false
	}
	return p.filled[index/blockSize][index%blockSize]
}

// Delete empties the slot at index.
func (p *Pool) Delete(index int) {
	if !p.Has(index) {
		return
	}
	p.filled[index/blockSize][index%blockSize] = false
	p.blocks[index/blockSize][index%blockSize] = Particle{}
	p.freeSlots = append(p.freeSlots, index)
	p.count--
}

// Len returns the number of live particles.
func (p *Pool) Len() int {
	return p.count
}

// Truncate deletes live particles from the highest index down until at most n remain.
func (p *Pool) Truncate(n int) {
	for i := p.nextIndex - 1; i >= 0 && p.count > n; i-- {
		p.Delete(i)
	}
}

// Compact moves live particles to the front and drops empty slots. The returned
// map translates old indices to new ones.
func (p *Pool) Compact() map[int]int {
	indexMap := make(map[int]int, p.count)
	if p.count == 0 {
		p.blocks = p.blocks[:0]
		p.filled = p.filled[:0]
		p.freeSlots = nil
		p.nextIndex = 0
		return indexMap
	}

	writePos := 0
	for readPos := 0; readPos < p.nextIndex; readPos++ {
		if !p.filled[readPos/blockSize][readPos%blockSize] {
			continue
		}
		indexMap[readPos] = writePos
		if readPos != writePos {
			p.blocks[writePos/blockSize][writePos%blockSize] = p.blocks[readPos/blockSize][readPos%blockSize]
			p.filled[writePos/blockSize][writePos%blockSize] = true
			p.blocks[readPos/blockSize][readPos%blockSize] = Particle{}
			p.filled[readPos/blockSize][readPos%blockSize] = false
		}
		writePos++
	}

	used := (writePos + blockSize - 1) / blockSize
	p.blocks = p.blocks[:used]
	p.filled = p.filled[:used]
	p.freeSlots = nil
	p.nextIndex = writePos
	return indexMap
}

// Iter yields the indices of live particles in ascending order.
func (p *Pool) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < p.nextIndex; i++ {
			if p.filled[i/blockSize][i%blockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}

// All yields every live particle with its index.
func (p *Pool) All() iter.Seq2[int, *Particle] {
	return func(yield func(int, *Particle) bool) {
		for i := range p.Iter() {
			if !yield(i, &p.blocks[i/blockSize][i%blockSize]) {
				return
			}
		}
	}
}

// Chunk is one storage block. Distinct chunks never share particles, so they
// can be processed concurrently.
type Chunk struct {
	offset int
	limit  int
	block  *[blockSize]Particle
	filled *[blockSize]bool
}

// Each calls fn for every live particle in the chunk.
func (c Chunk) Each(fn func(index int, p *Particle)) {
	for i := 0; i < c.limit; i++ {
		if c.filled[i] {
			fn(c.offset+i, &c.block[i])
		}
	}
}

// Chunks returns the pool's blocks that may hold live particles.
func (p *Pool) Chunks() []Chunk {
	chunks := make([]Chunk, 0, len(p.blocks))
	for b := range p.blocks {
		offset := b * blockSize
		if offset >= p.nextIndex {
			break
		}
		chunks = append(chunks, Chunk{
			offset: offset,
			limit:  min(blockSize, p.nextIndex-offset),
			block:  p.blocks[b],
			filled: p.filled[b],
		})
	}
	return chunks
}
