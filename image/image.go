package image

import (
	"github.com/rstms/checkbm"
	"github.com/spf13/afero"
	"io"
	"math/bits"
)

// Image is a read-only, block-addressed view of a device image file.
type Image struct {
	Filename  string
	fs        afero.Fs
	file      afero.File
	blockSize uint64
}

var _ checkbm.BlockDevice = (*Image)(nil)

func OpenImage(fs afero.Fs, filename string, blockSize uint64) (*Image, error) {
	if blockSize == 0 {
		return nil, Fatalf("invalid block size for %s: 0", filename)
	}
	i := Image{Filename: filename, fs: fs, blockSize: blockSize}
	var err error
	i.file, err = fs.Open(filename)
	if err != nil {
		return nil, Fatal(err)
	}
	return &i, nil
}

func (i *Image) Close() error {
	if i.file != nil {
		err := i.file.Close()
		if err != nil {
			return Fatal(err)
		}
		i.file = nil
	}
	return nil
}

func (i *Image) BlockSize() uint64 {
	return i.blockSize
}

// Size returns the image length in bytes.
func (i *Image) Size() (int64, error) {
	info, err := i.fs.Stat(i.Filename)
	if err != nil {
		return 0, Fatal(err)
	}
	return info.Size(), nil
}

// ReadBlocks reads count blocks starting at block offset. A range that
// does not lie within the image is an error and nothing is allocated.
func (i *Image) ReadBlocks(offset, count uint64) ([]byte, error) {
	if i.file == nil {
		return nil, Fatalf("image %s is closed", i.Filename)
	}
	hi, start := bits.Mul64(offset, i.blockSize)
	if hi != 0 {
		return nil, Fatalf("block %d out of range in %s", offset, i.Filename)
	}
	hi, length := bits.Mul64(count, i.blockSize)
	if hi != 0 {
		return nil, Fatalf("%d blocks at block %d out of range in %s", count, offset, i.Filename)
	}
	end, carry := bits.Add64(start, length, 0)
	size, err := i.Size()
	if err != nil {
		return nil, err
	}
	if carry != 0 || end > uint64(size) {
		return nil, Fatalf("%d blocks at block %d out of range in %s: image is %d bytes", count, offset, i.Filename, size)
	}
	buf := make([]byte, length)
	n, err := i.file.ReadAt(buf, int64(start))
	if err != nil && !(err == io.EOF && n == len(buf)) {
		if err == io.EOF {
			return nil, Fatalf("short read in %s at block %d: wanted %d bytes, got %d", i.Filename, offset, len(buf), n)
		}
		return nil, Fatal(err)
	}
	return buf, nil
}
