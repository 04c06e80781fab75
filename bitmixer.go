package automaton

// Golden ratio seed.
const phiC64 = uint64(0x9e3779b97f4a7c15)

// mix64 is the 64-bit finalization step of MurmurHash3.
func mix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}
