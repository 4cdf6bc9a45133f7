package main

import (
	"errors"
	"fmt"
	"strings"
)

const (
	namePrefixLen = 5
	extensionLen  = 4
	checksumMask  = 0xFFFFFFFFFFFF // checksum is kept to 48 bits
)

// ErrHeaderDecode is returned when a header block cannot be interpreted.
// The numeric fields are always well-formed big-endian integers, so in
// practice this only fires on impossible block counts.
var ErrHeaderDecode = errors.New("header block could not be parsed")

// IntegrityError reports a checksum mismatch between the footer and the
// recovered data. No file is written when it occurs.
type IntegrityError struct {
	Stored   uint64
	Computed uint64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("checksum mismatch: footer holds %d, data sums to %d", e.Stored, e.Computed)
}

// pageHeader is the decoded form of a header block.
type pageHeader struct {
	NamePrefix string
	Extension  string
	FileSize   int
	// BlockCount counts the header block plus all data blocks; the footer
	// is excluded.
	BlockCount int
}

// checksum48 sums all bytes of data, reduced modulo 2^48. Summation is
// order-independent, which makes this a weak integrity check: permuting the
// bytes yields the same value.
func checksum48(data []byte) uint64 {
	var sum uint64
	for _, b := range data {
		sum += uint64(b)
	}
	return sum & checksumMask
}

// buildHeader packs the header block: 5 bytes of base-name prefix, 4 bytes
// of extension, 3-byte file size and 3-byte block count, both big-endian.
// Over-length text fields are truncated, short ones zero-padded.
func buildHeader(name, ext string, fileSize, blockCount int) []byte {
	block := make([]byte, bytesPerBlock)
	copy(block[:namePrefixLen], name)
	copy(block[namePrefixLen:namePrefixLen+extensionLen], ext)
	putUint24(block[9:12], fileSize)
	putUint24(block[12:15], blockCount)
	return block
}

// parseHeader decodes a header block. Text fields are decoded permissively:
// bytes that are not valid UTF-8 are dropped and trailing zero padding is
// trimmed.
func parseHeader(block []byte) (pageHeader, error) {
	if len(block) != bytesPerBlock {
		return pageHeader{}, fmt.Errorf("header is %d bytes, want %d: %w", len(block), bytesPerBlock, ErrHeaderDecode)
	}
	h := pageHeader{
		NamePrefix: decodeText(block[:namePrefixLen]),
		Extension:  decodeText(block[namePrefixLen : namePrefixLen+extensionLen]),
		FileSize:   uint24(block[9:12]),
		BlockCount: uint24(block[12:15]),
	}
	if h.BlockCount < 1 {
		return pageHeader{}, fmt.Errorf("block count %d: %w", h.BlockCount, ErrHeaderDecode)
	}
	return h, nil
}

// buildFooter packs the footer block: last 5 bytes of the base name, the
// extension, and the 48-bit checksum of data stored big-endian across six
// bytes. data must already be trimmed to the exact file size.
func buildFooter(name, ext string, data []byte) []byte {
	block := make([]byte, bytesPerBlock)
	suffix := name
	if len(suffix) > namePrefixLen {
		suffix = suffix[len(suffix)-namePrefixLen:]
	}
	copy(block[:namePrefixLen], suffix)
	copy(block[namePrefixLen:namePrefixLen+extensionLen], ext)

	sum := checksum48(data)
	for i := 0; i < 6; i++ {
		block[9+i] = byte(sum >> (40 - i*8))
	}
	return block
}

// verifyFooter recomputes the checksum of the trimmed data and compares it
// with the value stored in the footer block. The footer's name and extension
// are surfaced through debug logging only; the checksum alone decides the
// outcome.
func verifyFooter(block, data []byte) error {
	storedName := decodeText(block[:namePrefixLen])
	storedExt := decodeText(block[namePrefixLen : namePrefixLen+extensionLen])
	debugf("footer name suffix %q extension %q", storedName, storedExt)

	var stored uint64
	for i := 0; i < 6; i++ {
		stored = stored<<8 | uint64(block[9+i])
	}
	computed := checksum48(data)
	debugf("footer checksum stored=%d computed=%d", stored, computed)

	if stored != computed {
		return &IntegrityError{Stored: stored, Computed: computed}
	}
	return nil
}

// decodeText drops invalid UTF-8 bytes and trailing zero padding.
func decodeText(b []byte) string {
	return strings.TrimRight(strings.ToValidUTF8(string(b), ""), "\x00")
}

func putUint24(b []byte, v int) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

func uint24(b []byte) int {
	return int(b[0])<<16 | int(b[1])<<8 | int(b[2])
}
