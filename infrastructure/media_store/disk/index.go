package disk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"veriface.io/application/utils"
	"veriface.io/infrastructure/logger"
)

// DiskStore keeps media under a local root directory. References are paths
// relative to the root, never absolute, so records stay portable across
// deployments.
type DiskStore struct {
	Root string
}

func (store *DiskStore) Save(folder string, data []byte, extension string) (string, error) {
	ref := filepath.Join(folder, fmt.Sprintf("%s.%s", utils.GenerateULIDString(), strings.TrimPrefix(extension, ".")))
	path := filepath.Join(store.Root, ref)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("could not create media directory", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error("could not persist media asset", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "ref",
			Data: ref,
		})
		return "", err
	}
	return ref, nil
}

func (store *DiskStore) Read(ref string) ([]byte, error) {
	return os.ReadFile(filepath.Join(store.Root, ref))
}

func (store *DiskStore) Delete(ref string) error {
	return os.Remove(filepath.Join(store.Root, ref))
}

func (store *DiskStore) AbsolutePath(ref string) string {
	return filepath.Join(store.Root, ref)
}
