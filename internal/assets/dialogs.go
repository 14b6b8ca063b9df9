package assets

import "github.com/sqweek/dialog"

// OpenSkinDialog shows the native file-open dialog filtered to skin image
// formats. Returns dialog.ErrCancelled when the user dismisses it.
func OpenSkinDialog() (string, error) {
	return dialog.File().
		Title("Open Skin").
		Filter("Skin images (*.png, *.bmp)", "png", "bmp").
		Load()
}

// SaveSkinDialog shows the native file-save dialog for a PNG target.
func SaveSkinDialog() (string, error) {
	return dialog.File().
		Title("Save Skin").
		Filter("PNG image (*.png)", "png").
		Save()
}

// Cancelled reports whether a dialog error means the user backed out
// rather than a real failure.
func Cancelled(err error) bool {
	return err == dialog.ErrCancelled
}
