package eval

import "github.com/rubiojr/intarr/host"

// Run loads path and everything it transitively `use`s, then invokes
// `main` with argv if it is defined. It is the single entry point
// package cmd drives; the only error handling left to the caller is
// the "Error: " + exit(1) presentation (spec §4.5, §7).
func Run(path string, argv []string, h host.Host) error {
	in := New(h)
	if err := in.LoadFile(path); err != nil {
		return err
	}
	return in.CallMain(argv)
}
