package net

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// CSVLogger logs training progress to a CSV file.
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool

	file   *os.File
	writer *csv.Writer
	start  time.Time
	err    error
}

// NewCSVLogger creates a new CSVLogger.
func NewCSVLogger(filename string, append bool) *CSVLogger {
	return &CSVLogger{
		Filename: filename,
		Append:   append,
	}
}

func (c *CSVLogger) OnTrainBegin(n *Network) {
	mode := os.O_CREATE | os.O_WRONLY
	if c.Append {
		mode |= os.O_APPEND
	} else {
		mode |= os.O_TRUNC
	}

	file, err := os.OpenFile(c.Filename, mode, 0644)
	if err != nil {
		c.err = fmt.Errorf("failed to open %s: %w", c.Filename, err)
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()
	c.err = nil

	// Write header if not appending or if file is empty
	info, err := file.Stat()
	if err == nil && (info.Size() == 0 || !c.Append) {
		c.write([]string{"epoch", "loss", "time_seconds"})
	}
}

func (c *CSVLogger) OnEpochEnd(epoch int, loss float64, n *Network) {
	if c.writer == nil {
		return
	}

	elapsed := time.Since(c.start).Seconds()
	c.write([]string{
		strconv.Itoa(epoch),
		fmt.Sprintf("%.6f", loss),
		fmt.Sprintf("%.2f", elapsed),
	})
}

func (c *CSVLogger) OnTrainEnd(n *Network) {
	if c.file != nil {
		c.writer.Flush()
		if err := c.file.Close(); err != nil && c.err == nil {
			c.err = fmt.Errorf("failed to close %s: %w", c.Filename, err)
		}
		c.file = nil
		c.writer = nil
	}
}

// Err returns the first error hit while opening or writing the file.
func (c *CSVLogger) Err() error {
	return c.err
}

func (c *CSVLogger) write(record []string) {
	if err := c.writer.Write(record); err != nil && c.err == nil {
		c.err = fmt.Errorf("failed to write record: %w", err)
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil && c.err == nil {
		c.err = fmt.Errorf("failed to flush record: %w", err)
	}
}
