package models

import (
	"fmt"
	"io"
	"os"
)

type Config struct {
	Color    bool
	Verbose  bool
	Arch     string
	MaxDepth int
	Rev      int

	Output io.WriteCloser
}

func NewConfig() *Config {
	return &Config{Rev: -1, Output: os.Stderr}
}

func (c *Config) Init() *Config {
	if c == nil {
		return NewConfig()
	}
	if c.Output == nil {
		c.Output = os.Stderr
	}
	return c
}

func (c *Config) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Output, format, args...)
}

func (c *Config) Println(s interface{}) {
	fmt.Fprintln(c.Output, s)
}

// Debugf only prints with Verbose set.
func (c *Config) Debugf(format string, args ...interface{}) {
	if c.Verbose {
		fmt.Fprintf(c.Output, format, args...)
	}
}
