package trackmeta

// Each format package registers its parser in init.
import (
	_ "github.com/simonhull/trackmeta/internal/flac"
	_ "github.com/simonhull/trackmeta/internal/mp3"
	_ "github.com/simonhull/trackmeta/internal/wav"
)
