/*
Package headerfile keeps a chain of block headers in a flat file.

Header n lives at byte offset 80*n, starting with the network's genesis
header, so the tip height is just the file size over 80. Every header
appended has to link to the tip and carry a valid proof of work for its
height. Difficulty retargeting is not checked; a header may claim any bits
up to the network's limit.
*/
package headerfile

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/btcsuite/btcd/wire"
	"github.com/mit-dci/litpow/coinparam"
	"github.com/mit-dci/litpow/consts"
	"github.com/mit-dci/litpow/logging"
	"github.com/pkg/errors"
)

var (
	// ErrNoGenesis is returned when creating a file for a network that has
	// no genesis block to start it with.
	ErrNoGenesis = errors.New("network has no genesis block")

	// ErrDoesNotLink is a header whose PrevBlock is not the tip's hash.
	ErrDoesNotLink = errors.New("header doesn't attach to tip")

	// ErrNotFound is returned by FindHeader and HeaderAtHeight.
	ErrNotFound = errors.New("header not found")
)

// maxFindTries bounds how far back FindHeader searches.
const maxFindTries = 2200

// File is a header chain on disk. It is safe for concurrent use.
type File struct {
	mu    sync.Mutex
	f     *os.File
	param *coinparam.Params
}

// Open opens the header file at path, creating it with p's genesis header if
// it is empty. A trailing partial header is cut off.
func Open(path string, p *coinparam.Params) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}
	hf := &File{f: f, param: p}

	size, err := hf.size()
	if err != nil {
		f.Close()
		return nil, err
	}
	if size == 0 {
		if p.GenesisBlock == nil {
			f.Close()
			return nil, errors.Wrap(ErrNoGenesis, p.Name)
		}
		logging.Infof("new header file %s for %s", path, p.Name)
		if err := hf.write(&p.GenesisBlock.Header, 0); err != nil {
			f.Close()
			return nil, err
		}
	}
	return hf, nil
}

// Close closes the underlying file.
func (hf *File) Close() error {
	return hf.f.Close()
}

// size returns the file length, truncating it to a whole number of headers.
func (hf *File) size() (int64, error) {
	info, err := hf.f.Stat()
	if err != nil {
		return 0, err
	}
	size := info.Size()
	if size%consts.HeaderLen != 0 { // header file broken
		// try to fix it!
		logging.Warnf("header file not a multiple of %d bytes. Truncating", consts.HeaderLen)
		size -= size % consts.HeaderLen
		if err := hf.f.Truncate(size); err != nil {
			return 0, err
		}
	}
	return size, nil
}

func (hf *File) write(hdr *wire.BlockHeader, height int32) error {
	var buf bytes.Buffer
	if err := hdr.Serialize(&buf); err != nil {
		return err
	}
	_, err := hf.f.WriteAt(buf.Bytes(), int64(height)*consts.HeaderLen)
	return err
}

func (hf *File) read(height int32) (*wire.BlockHeader, error) {
	b := make([]byte, consts.HeaderLen)
	if _, err := hf.f.ReadAt(b, int64(height)*consts.HeaderLen); err != nil {
		if err == io.EOF {
			return nil, errors.Wrapf(ErrNotFound, "height %d", height)
		}
		return nil, err
	}
	hdr := new(wire.BlockHeader)
	if err := hdr.Deserialize(bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return hdr, nil
}

func (hf *File) tipHeight() (int32, error) {
	size, err := hf.size()
	if err != nil {
		return 0, err
	}
	// subtract 1 as we want the start of the tip offset, not the end
	return int32(size/consts.HeaderLen) - 1, nil
}

// TipHeight is the height of the last header in the file.
func (hf *File) TipHeight() (int32, error) {
	hf.mu.Lock()
	defer hf.mu.Unlock()
	return hf.tipHeight()
}

// Tip returns the last header and its height.
func (hf *File) Tip() (int32, *wire.BlockHeader, error) {
	hf.mu.Lock()
	defer hf.mu.Unlock()
	height, err := hf.tipHeight()
	if err != nil {
		return 0, nil, err
	}
	hdr, err := hf.read(height)
	return height, hdr, err
}

// HeaderAtHeight gives back a header at the specified height
func (hf *File) HeaderAtHeight(h int32) (*wire.BlockHeader, error) {
	if h < 0 {
		return nil, errors.Wrapf(ErrNotFound, "height %d", h)
	}
	hf.mu.Lock()
	defer hf.mu.Unlock()
	return hf.read(h)
}

// Append checks that hdr extends the tip and writes it. It returns the new
// tip height.
func (hf *File) Append(hdr *wire.BlockHeader) (int32, error) {
	hf.mu.Lock()
	defer hf.mu.Unlock()

	tipHeight, err := hf.tipHeight()
	if err != nil {
		return 0, err
	}
	tip, err := hf.read(tipHeight)
	if err != nil {
		return 0, err
	}
	height := tipHeight + 1
	if err := checkLink(tip, hdr, height); err != nil {
		return 0, err
	}
	// check if there's a valid proof of work.  That whole "Bitcoin" thing.
	if err := coinparam.CheckProofOfWork(hdr, height, hf.param); err != nil {
		logging.Warnf("Block %d Bad proof of work: %v", height, err)
		return 0, err
	}
	if err := hf.write(hdr, height); err != nil {
		return 0, err
	}
	logging.Debugf("header %d %s appended", height, hdr.BlockHash())
	return height, nil
}

// check if headers link together.  That whole 'blockchain' thing.
func checkLink(prev, cur *wire.BlockHeader, height int32) error {
	prevHash := prev.BlockHash()
	if !prevHash.IsEqual(&cur.PrevBlock) {
		return errors.Wrapf(ErrDoesNotLink, "headers %d and %d: %s - %s",
			height-1, height, prevHash, cur.PrevBlock)
	}
	return nil
}

// FindHeader will try to find where the header you give it is.
// it runs backwards from the tip and gives up after 2200 headers
func (hf *File) FindHeader(hdr wire.BlockHeader) (int32, error) {
	hf.mu.Lock()
	defer hf.mu.Unlock()

	targethash := hdr.BlockHash()
	tipHeight, err := hf.tipHeight()
	if err != nil {
		return -1, err
	}
	for h := tipHeight; h >= 0 && tipHeight-h < maxFindTries; h-- {
		cur, err := hf.read(h)
		if err != nil {
			return -1, err
		}
		curhash := cur.BlockHash()
		if targethash.IsEqual(&curhash) {
			return h, nil
		}
	}
	return -1, errors.Wrapf(ErrNotFound, "%s", targethash)
}

// Verify re-checks every link and proof of work after the genesis header.
func (hf *File) Verify() error {
	hf.mu.Lock()
	defer hf.mu.Unlock()

	tipHeight, err := hf.tipHeight()
	if err != nil {
		return err
	}
	// don't try to verfy the genesis block.  That way madness lies.
	prev, err := hf.read(0)
	if err != nil {
		return err
	}
	for h := int32(1); h <= tipHeight; h++ {
		cur, err := hf.read(h)
		if err != nil {
			return err
		}
		if err := checkLink(prev, cur, h); err != nil {
			return err
		}
		if err := coinparam.CheckProofOfWork(cur, h, hf.param); err != nil {
			return errors.Wrapf(err, "height %d", h)
		}
		prev = cur
	}
	return nil
}
