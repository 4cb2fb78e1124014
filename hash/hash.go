package hash

// Size is the length of every digest produced by the package.
const Size = 32

// Sum computes a blake3 digest over the concatenation of chunks.
func Sum(chunks ...[]byte) (rst [Size]byte) {
	hh := GetHasher()
	defer PutHasher(hh)
	for _, chunk := range chunks {
		hh.Write(chunk)
	}
	hh.Sum(rst[:0])
	return rst
}
