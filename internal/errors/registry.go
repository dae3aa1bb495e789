package errors

const docBase = "https://vango.dev/docs/htmlattrs/errors/"

type template struct {
	Category Category
	Message  string
	Detail   string
}

// registry holds every code htmlattrs reports.
//
//	E10x  charset names
//	E12x  htmlattrs.json
//	E13x  command line
//	E14x  HTTP service
var registry = map[string]template{
	"E101": {CategoryCharset, "Unknown charset",
		"The name is neither an IANA charset name or alias nor a WHATWG encoding label."},
	"E102": {CategoryCharset, "Unsupported charset",
		"The charset is registered but golang.org/x/text has no encoder for it."},
	"E103": {CategoryCharset, "Empty charset name",
		"A charset name is required when changing the output charset."},

	"E120": {CategoryConfig, "Invalid configuration",
		"htmlattrs.json could not be read or is not valid JSON."},
	"E121": {CategoryConfig, "Configuration not found",
		"No htmlattrs.json exists at the given path."},
	"E122": {CategoryConfig, "Invalid port",
		"serve.port must be between 0 and 65535."},
	"E123": {CategoryConfig, "Invalid tab offset",
		"element.tabOffset cannot be negative."},

	"E130": {CategoryCLI, "Invalid attribute assignment",
		"Values passed with --set must have the form name=value."},
	"E131": {CategoryCLI, "Attribute not found",
		"The attribute is not present in the input."},
	"E132": {CategoryCLI, "Failed to read input",
		"The attributes could not be read from stdin or the given file."},

	"E140": {CategoryService, "Malformed request body",
		"The request body must be a single JSON object of at most 1 MiB."},
	"E141": {CategoryService, "Server failed",
		"The HTTP listener stopped with an error."},
}

