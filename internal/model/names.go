package model

import "strconv"

// Names allocates unique loop, path and block names. Each counter is
// monotonic and starts at 1; one allocator serves one extraction run.
type Names struct {
	loops  int
	paths  int
	blocks int
}

func (n *Names) Loop() string {
	n.loops++
	return "loop" + strconv.Itoa(n.loops)
}

func (n *Names) Path() string {
	n.paths++
	return "path" + strconv.Itoa(n.paths)
}

func (n *Names) Block() string {
	n.blocks++
	return "block" + strconv.Itoa(n.blocks)
}
