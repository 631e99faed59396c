// Command console tails the firmware's USB serial console.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"picowireless/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	cfg.ReadTimeout = 0 // block; we only ever read

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Connected to %s, streaming console output (Ctrl-C to exit)\n", *device)

	if _, err := io.Copy(os.Stdout, port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: read failed: %v\n", err)
		os.Exit(1)
	}
}
