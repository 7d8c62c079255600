package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const help = `commands:
  o R C    open a tile
  f R C    toggle a flag
  c R C    chord around an opened number
  n [D]    new game (beginner, intermediate, expert or R:C:M)
  g        show the board
  q        quit`

type client struct {
	log     *logrus.Logger
	engine  *mines.Engine
	out     io.Writer
	session *mines.Session
}

var errQuit = errors.New("quit")

func (c *client) execute(line string) error {
	switch line = strings.TrimSpace(line); line {
	case "q":
		return errQuit
	case "g", "":
		return nil
	case "h", "?":
		fmt.Fprintln(c.out, help)
		return nil
	}

	action, err := mines.ParseCommand(line)
	if err != nil {
		return err
	}

	prev := c.session.State()
	next, err := c.engine.Apply(c.session, action)
	if err != nil {
		return err
	}
	c.session = next

	entry := c.log.WithFields(logrus.Fields{
		"action": action,
		"state":  next.State(),
	})
	if next.State() != prev {
		entry.Info("state changed")
	} else {
		entry.Debug("applied")
	}
	return nil
}

func (c *client) render() {
	s := c.session
	fmt.Fprint(c.out, s.String())
	fmt.Fprintf(c.out, "%s | mines left: %d | time: %ds\n", s.State(), s.RemainingMines(), s.Elapsed())
	switch s.State() {
	case mines.Won:
		fmt.Fprintln(c.out, "you win! type n for a new game")
	case mines.Lost:
		fmt.Fprintln(c.out, "boom. type n for a new game")
	}
}

func (c *client) tick() {
	next, err := c.engine.Apply(c.session, mines.TimerTick{})
	if err != nil {
		c.log.Error("unable to advance timer: ", err)
		return
	}
	c.session = next
}

// run reads commands from in until EOF, q or ctx is done. The clock advances
// once per tick while the game is being played.
func (c *client) run(ctx context.Context, in io.Reader, interval time.Duration) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			c.log.Error("unable to read input: ", err)
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.tick()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := c.execute(line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				c.log.WithField("line", line).Warn("rejected command: ", err)
				fmt.Fprintln(c.out, "error:", err)
				continue
			}
			c.render()
		}
	}
}
