package appinfo

import (
	"errors"
	"strconv"
)

// ClientIconOf returns the client icon recorded in tree. The tree must
// describe appID itself, a record for any other app yields nothing.
func ClientIconOf(tree Object, appID int32) (string, bool) {
	if id, ok := tree.Int("appinfo", "appid"); !ok || id != appID {
		return "", false
	}
	return tree.Text("appinfo", "common", "clienticon")
}

// ClientIcon looks up the client icon of an app in the appinfo file at
// path. A missing file is reported as an error matching ErrFileNotFound,
// other open and read failures are returned as is. An unknown app, an app
// without icon or a corrupt file layout yield no result without error.
func ClientIcon(appID, path string) (string, bool, error) {
	f, err := Open(path, nil)
	if errors.Is(err, ErrCorrupt) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	defer f.Close()

	id, err := strconv.ParseInt(appID, 10, 32)
	if err != nil {
		return "", false, nil
	}

	tree, err := f.Find(uint32(id))
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorrupt) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}

	icon, ok := ClientIconOf(tree, int32(id))
	return icon, ok, nil
}
