package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// browsePageSize is how many listings are drawn around the cursor.
const browsePageSize = 20

// runBrowse lets the user move through the listings with the arrow keys and
// press Enter to show one, which also refreshes the map output.
func (a *app) runBrowse(ctx context.Context) error {
	options := a.session.Options()
	if len(options) == 0 {
		return nil
	}

	if runtime.GOOS == "windows" {
		enableVT()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Println("(interactive selection not supported on this terminal)")
		return nil
	}
	defer func() { term.Restore(fd, oldState) }()

	reader := bufio.NewReader(os.Stdin)
	selected := 0

	redraw := func() {
		fmt.Print("\033[H\033[2J")
		start := max(0, selected-browsePageSize/2)
		end := min(len(options), start+browsePageSize)
		for i := start; i < end; i++ {
			prefix := "  "
			if i == selected {
				prefix = "> "
			}
			fmt.Print(prefix + options[i] + "\r\n")
		}
		fmt.Print("(↑/↓ to navigate, Enter to show, Esc to quit)\r\n")
	}

	show := func() error {
		term.Restore(fd, oldState)
		fmt.Println()
		if err := a.runShow(ctx, []string{options[selected]}); err != nil {
			a.logger.Warn("Show failed: %v", err)
		}

		fmt.Print("\n(press Enter to return)")
		_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')

		oldState, err = term.MakeRaw(fd)
		if err != nil {
			return err
		}
		reader = bufio.NewReader(os.Stdin)
		redraw()
		return nil
	}

	up := func() {
		if selected > 0 {
			selected--
			redraw()
		}
	}
	down := func() {
		if selected < len(options)-1 {
			selected++
			redraw()
		}
	}

	redraw()

	for {
		if ctx.Err() != nil {
			return nil
		}
		b1, err := reader.ReadByte()
		if err != nil {
			return nil
		}
		// Windows console arrow keys arrive as 0 or 224 followed by a code.
		if b1 == 0 || b1 == 224 {
			b2, _ := reader.ReadByte()
			switch b2 {
			case 72:
				up()
			case 80:
				down()
			case 13:
				if err := show(); err != nil {
					return nil
				}
			}
			continue
		}

		switch b1 {
		case 27:
			if reader.Buffered() == 0 {
				fmt.Print("\r\n")
				return nil
			}
			b2, _ := reader.ReadByte()
			if b2 != '[' || reader.Buffered() == 0 {
				continue
			}
			b3, _ := reader.ReadByte()
			switch b3 {
			case 'A':
				up()
			case 'B':
				down()
			}
		case '\r', '\n':
			if err := show(); err != nil {
				return nil
			}
		case 3, 'q':
			fmt.Print("\r\n")
			return nil
		}
	}
}
