package checkbm

// A BlockDevice provides bounded, block-addressed reads of a device image.
type BlockDevice interface {
	// BlockSize returns the size in bytes of one block.
	BlockSize() uint64
	// ReadBlocks returns exactly count blocks starting at block offset.
	ReadBlocks(offset, count uint64) ([]byte, error)
}
