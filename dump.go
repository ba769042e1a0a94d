package tusl

import (
	"fmt"
	"io"
	"strconv"
)

// Dump writes a human-readable snapshot of the VM's dictionary, stack, and
// arena layout to w, for interactive debugging and the -dump CLI flag.
func (vm *VM) Dump(w io.Writer) {
	d := vmDumper{vm: vm, out: w}
	d.dump()
}

type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (d vmDumper) dump() {
	fmt.Fprintf(d.out, "# VM Dump\n")
	fmt.Fprintf(d.out, "  mode: %c\n", d.vm.mode)
	fmt.Fprintf(d.out, "  prog: %d\n", d.vm.prog)
	fmt.Fprintf(d.out, "  here: %d  there: %d  size: %d\n", d.vm.here, d.vm.there, len(d.vm.arena))

	d.dumpStack()
	d.dumpDict()
}

func (d vmDumper) dumpStack() {
	fmt.Fprintf(d.out, "  stack:")
	for _, v := range d.vm.stack {
		fmt.Fprintf(d.out, " %d", v)
	}
	fmt.Fprintln(d.out)
}

func (d vmDumper) dumpDict() {
	width := len(strconv.Itoa(len(d.vm.dict)))
	fmt.Fprintf(d.out, "  dict:\n")
	for i, w := range d.vm.dict {
		fmt.Fprintf(d.out, "  % *d: %-16s datum=%-6d", width, i, w.Name, w.Datum)
		if isSequence(w.Action) {
			d.dumpBody(w.Datum)
		}
		fmt.Fprintln(d.out)
	}
}

// dumpBody prints a compiled sequence's cells until it reaches EXIT,
// resolving cell values that name a dictionary entry to that entry's name.
func (d vmDumper) dumpBody(entry int) {
	for addr := entry; ; addr += cellSize {
		cell := int(d.vm.CellAt(addr))
		switch {
		case cell == wordExit:
			fmt.Fprint(d.out, " ;")
			return
		case cell == wordLiteral:
			addr += cellSize
			fmt.Fprintf(d.out, " lit(%d)", d.vm.CellAt(addr))
		case cell >= 0 && cell < len(d.vm.dict):
			fmt.Fprintf(d.out, " %s", d.vm.dict[cell].Name)
		default:
			fmt.Fprintf(d.out, " %d", cell)
		}
	}
}
