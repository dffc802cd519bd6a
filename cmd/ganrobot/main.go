// ganrobot - CLI for driving a GAN cube-solving robot over BLE.
package main

import (
	"github.com/ganrobot/ganrobot/internal/cli"
)

func main() {
	cli.Execute()
}
