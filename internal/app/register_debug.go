// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"

	"github.com/relabs-tech/telemetry_bridge/internal/sensors"
)

// RunRegisterDebug initializes the MPU-6050, reads every register in the
// reference map, and prints live values next to their documented meaning.
func RunRegisterDebug() error {
	imu, err := sensors.NewMPU6050()
	if err != nil {
		return err
	}
	defer imu.Close()

	values, err := imu.DumpRegisters()
	if err != nil {
		return err
	}

	fmt.Printf("%-6s %-18s %-6s %-7s %s\n", "ADDR", "NAME", "VALUE", "ACCESS", "DESCRIPTION")
	for _, info := range sensors.MPU6050RegisterMap() {
		fmt.Printf("0x%02X   %-18s 0x%02X   %-7s %s\n",
			info.Address, info.Name, values[info.Address], info.Access, info.Description)
		for _, bf := range info.BitFields {
			fmt.Printf("       [%s] %s: %s", bf.Bits, bf.Name, bf.Description)
			if bf.Values != "" {
				fmt.Printf(" (%s)", bf.Values)
			}
			fmt.Println()
		}
	}
	return nil
}
