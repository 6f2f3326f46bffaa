package universe

import "math/bits"

//WordBits is the number of cells packed into one word of an exported buffer
const WordBits = 64

//Bitset is a fixed-length array of bits packed into uint64 words.
//Bit i lives in word i/64 at position i%64 (least significant bit first).
//Bits past Len() in the last word are always zero.
type Bitset struct {
	words []uint64
	n     int
}

//NewBitset allocates a zeroed bitset of n bits
func NewBitset(n int) Bitset {
	if n < 0 {
		n = 0
	}
	return Bitset{words: make([]uint64, wordsFor(n)), n: n}
}

func wordsFor(n int) int {
	return (n + WordBits - 1) / WordBits
}

//Len returns the number of bits
func (b *Bitset) Len() int { return b.n }

//Words exposes the backing words. The slice aliases the bitset.
func (b *Bitset) Words() []uint64 { return b.words }

//Get reports whether bit i is set
func (b *Bitset) Get(i int) bool {
	return b.words[i/WordBits]&(1<<(uint(i)%WordBits)) != 0
}

//Insert sets bit i
func (b *Bitset) Insert(i int) {
	b.words[i/WordBits] |= 1 << (uint(i) % WordBits)
}

//Remove clears bit i
func (b *Bitset) Remove(i int) {
	b.words[i/WordBits] &^= 1 << (uint(i) % WordBits)
}

//Set writes v into bit i
func (b *Bitset) Set(i int, v bool) {
	if v {
		b.Insert(i)
	} else {
		b.Remove(i)
	}
}

//Flip inverts bit i
func (b *Bitset) Flip(i int) {
	b.words[i/WordBits] ^= 1 << (uint(i) % WordBits)
}

//ClearAll resets every bit
func (b *Bitset) ClearAll() {
	for i := range b.words {
		b.words[i] = 0
	}
}

//Fill sets every bit in [0, Len())
func (b *Bitset) Fill() {
	for i := range b.words {
		b.words[i] = ^uint64(0)
	}
	b.trim()
}

//trim zeroes the unused tail of the last word
func (b *Bitset) trim() {
	if tail := uint(b.n) % WordBits; tail != 0 {
		b.words[len(b.words)-1] &= (1 << tail) - 1
	}
}

//Count returns the number of set bits
func (b *Bitset) Count() int {
	c := 0
	for _, w := range b.words {
		c += bits.OnesCount64(w)
	}
	return c
}

//ForEach calls fn for every set bit in ascending order
func (b *Bitset) ForEach(fn func(i int)) {
	for wi, w := range b.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			fn(wi*WordBits + tz)
			w &= w - 1
		}
	}
}

//CopyFrom overwrites b with the contents of o. Both must have the same length.
func (b *Bitset) CopyFrom(o Bitset) {
	copy(b.words, o.words)
}

//Equal reports whether both bitsets hold the same bits
func (b *Bitset) Equal(o Bitset) bool {
	if b.n != o.n {
		return false
	}
	for i := range b.words {
		if b.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

//Clone returns an independent copy
func (b *Bitset) Clone() Bitset {
	c := Bitset{words: make([]uint64, len(b.words)), n: b.n}
	copy(c.words, b.words)
	return c
}
