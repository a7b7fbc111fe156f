package media_store

import (
	"veriface.io/infrastructure/env"
	"veriface.io/infrastructure/media_store/disk"
	"veriface.io/infrastructure/media_store/types"
)

var Store types.MediaStore

func InitialiseMediaStore() {
	Store = &disk.DiskStore{
		Root: env.GetString("MEDIA_ROOT", "data/media"),
	}
}
