package launch

import "errors"

// Sentinel errors for the launch package.
var (
	// ErrDanglingReference indicates a compound names an entry that does not exist.
	ErrDanglingReference = errors.New("launch: compound references unknown configuration")

	// ErrDuplicateName indicates two entries share a name, which the editor cannot disambiguate.
	ErrDuplicateName = errors.New("launch: duplicate configuration name")

	// ErrEncode indicates the document could not be serialized.
	ErrEncode = errors.New("launch: encode document")
)
