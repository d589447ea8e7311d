package cartstore

import (
	"os"
	"path/filepath"
)

// DiskStore keeps one JSON file per session under a configured directory.
// This is the durable local tier the cart can always fall back to.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

func (d *DiskStore) fileName(key string) string {
	return filepath.Join(d.Dir, key+".json")
}

func (d *DiskStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(d.fileName(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

func (d *DiskStore) Set(key string, value []byte) error {
	return os.WriteFile(d.fileName(key), value, 0666)
}

func (d *DiskStore) Remove(key string) error {
	err := os.Remove(d.fileName(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
