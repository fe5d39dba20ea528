package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// DescCloning labels the clone spinner
const DescCloning = "Cloning"

// NewSpinner creates a consistently styled spinner writing to w. Git sideband
// output carries no total, so bytes received are shown instead of a bar.
//
//	bar := utils.NewSpinner(os.Stderr, utils.DescCloning)
//	defer bar.Finish()
func NewSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
}
