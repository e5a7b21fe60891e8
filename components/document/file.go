package document

import (
	"fmt"
	"os"
	"strconv"
)

// NewFile reads a local file into a Document
func NewFile(fname string) (*Document, error) {
	fileInfo, err := os.Stat(fname)
	if err != nil {
		return nil, err
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory", fname)
	}
	bs, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return NewDocument(bs, map[string]string{
		"filename": fileInfo.Name(),
		"modtime":  strconv.FormatInt(fileInfo.ModTime().Unix(), 10),
	}), nil
}
