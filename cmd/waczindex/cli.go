package main

// CLI is the command's argument and flag set, parsed by kong.
type CLI struct {
	WarcPath string `arg:"" name:"warc-path" type:"path" help:"Path to the input WARC file (plain or gzip-compressed)."`
	Output   string `name:"output" short:"o" help:"Path to write the resulting .wacz archive (default: derived from the input filename)."`
	Debug    bool   `name:"debug" short:"d" help:"Enable debug logging."`
}
