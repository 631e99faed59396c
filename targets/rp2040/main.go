//go:build rp2040

package main

import (
	"machine"
	"time"

	"picowireless/esp32"
	"picowireless/protocol"
)

// Pico Wireless pack control lines.
const (
	pinCS    = machine.GPIO7
	pinAck   = machine.GPIO10
	pinReset = machine.GPIO11
	pinGpio2 = machine.GPIO2
)

// RGB LED on the ESP32 side, driven through AnalogWrite.
const (
	espLedR = 25
	espLedG = 26
	espLedB = 27
)

// Datagram sink for the demo loop; run host/cmd/udp-listener there.
var peerAddr = esp32.IPv4{192, 168, 0, 17}

const peerPort = 34254

func main() {
	// Give the USB console a moment to enumerate so early output is
	// not lost.
	time.Sleep(2 * time.Second)

	esp32.SetDebugWriter(func(s string) { println(s) })

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	tr, err := initTransport()
	if err != nil {
		fatal("SPI init failed: " + err.Error())
	}

	println("creating ESP32 interface")
	dev := esp32.New(tr,
		newOutputPin(pinCS),
		newOutputPin(pinReset),
		newOutputPin(pinGpio2),
		newInputPin(pinAck),
	)

	showNetworks(dev)

	if err := dev.SetPassphrase("", ""); err != nil {
		println("set passphrase:", err.Error())
	}

	var sock esp32.Socket
	haveSock := false

	for {
		led.High()
		checked(dev.AnalogWrite(espLedR, 255))
		checked(dev.AnalogWrite(espLedB, 0))
		time.Sleep(500 * time.Millisecond)

		status, err := dev.GetConnStatus()
		switch {
		case err != nil:
			println("connection status:", err.Error())
		case status == esp32.StatusConnected:
			sendHello(dev, &sock, &haveSock)
		default:
			println("status:", status.String())
		}

		led.Low()
		checked(dev.AnalogWrite(espLedR, 0))
		checked(dev.AnalogWrite(espLedB, 255))
		time.Sleep(500 * time.Millisecond)
	}
}

// sendHello pushes one datagram to the peer, allocating the socket on
// first use.
func sendHello(dev *esp32.Esp32, sock *esp32.Socket, haveSock *bool) {
	ip, mask, gateway, err := dev.GetNetworkData()
	if err != nil {
		println("network data:", err.Error())
		return
	}
	println("IP", ip.String(), "mask", mask.String(), "gateway", gateway.String())

	if !*haveSock {
		s, err := dev.GetSocket()
		if err != nil {
			println("get socket:", err.Error())
			return
		}
		*sock = s
		*haveSock = true
	}

	if err := dev.StartClient(peerAddr, peerPort, *sock, esp32.ProtoUDP); err != nil {
		println("start client:", err.Error())
		return
	}
	if err := dev.InsertDataBuf(*sock, []byte("Hello")); err != nil {
		println("insert data:", err.Error())
		return
	}
	if err := dev.SendDataUDP(*sock); err != nil {
		println("send:", err.Error())
		return
	}
	println("sent")
}

func showNetworks(dev *esp32.Esp32) {
	ssids := protocol.NewFieldBuffer(256, 16)
	if err := dev.ScanNetworks(ssids); err != nil {
		println("scan failed:", err.Error())
		return
	}

	println("found", ssids.Len(), "networks:")
	for i := 0; i < ssids.Len(); i++ {
		ssid, err := ssids.FieldAsString(i)
		if err != nil {
			println("  network", i, ":", err.Error())
			continue
		}
		channel, _ := dev.GetChannel(byte(i))
		rssi, _ := dev.GetRSSI(byte(i))
		enc, _ := dev.GetEncryptionType(byte(i))
		bssid, _ := dev.GetBSSID(byte(i))
		println("  ", ssid, "(", bssid.String(), ") ch", channel, "rssi", rssi, enc.String())
	}
}

func checked(err error) {
	if err != nil {
		println("esp32:", err.Error())
	}
}

func fatal(msg string) {
	for {
		println(msg)
		time.Sleep(time.Second)
	}
}
