// Command udp-listener is the datagram sink for the firmware's demo
// loop: it prints every packet the board sends.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
)

var addr = flag.String("addr", ":34254", "UDP listen address")

func main() {
	flag.Parse()

	conn, err := net.ListenPacket("udp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Printf("Listening on %s\n", conn.LocalAddr())

	buf := make([]byte, 1024)
	for {
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Received %d bytes from %s\n", n, src)
		fmt.Printf("%v\n\n", buf[:n])
	}
}
