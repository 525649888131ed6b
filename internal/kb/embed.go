package kb

import _ "embed"

// Default dataset shipped with the binary; used when KB_PATH is unset.
//
//go:embed data/crop_data.json
var defaultCropData []byte
