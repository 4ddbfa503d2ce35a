package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/telemetry_bridge/internal/config"
	"github.com/relabs-tech/telemetry_bridge/internal/sensors"
	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
	"github.com/relabs-tech/telemetry_bridge/internal/transport"
)

// RunStreamer wires sensor sources, the bridge, and the UDP transmitter,
// then runs until interrupted. With useMock set the MPU-6050 is replaced
// by a generated signal source for development off-target.
func RunStreamer(useMock bool) error {
	log.Println("starting telemetry streamer (sensors → UDP)")

	cfg := config.Get()

	// --- sensor sources ---
	var src telemetry.Source
	if useMock {
		log.Println("using mock sensor source")
		src = sensors.NewMockSource()
	} else {
		imu, err := sensors.NewMPU6050()
		if err != nil {
			return err
		}
		defer imu.Close()

		var extras []telemetry.Source
		if cfg.EnvEnable {
			env, err := sensors.NewEnvSource()
			if err != nil {
				log.Printf("WARNING: env sensor unavailable, continuing without it: %v", err)
			} else {
				defer env.Close()
				extras = append(extras, env)
			}
		}
		if cfg.GPSEnable {
			gps, err := sensors.NewGPSSource()
			if err != nil {
				log.Printf("WARNING: GPS unavailable, continuing without it: %v", err)
			} else {
				defer gps.Close()
				extras = append(extras, gps)
			}
		}
		src = sensors.Merge(imu, extras...)
	}

	// --- transmitters ---
	udp, err := transport.NewUDP(cfg.UDPTargetHost, cfg.UDPTargetPort)
	if err != nil {
		return err
	}
	defer udp.Close()
	log.Printf("telemetry destination %s", udp.Dest())

	tx := telemetry.Transmitter(udp)
	if cfg.MQTTEnable {
		mirror, err := transport.NewMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
		if err != nil {
			log.Printf("WARNING: MQTT mirror unavailable, continuing without it: %v", err)
		} else {
			defer mirror.Close()
			tx = transport.Tee(udp, mirror)
			log.Printf("mirroring telemetry to MQTT broker %s topic %s", cfg.MQTTBroker, cfg.MQTTTopic)
		}
	}

	// --- bridge ---
	bridge := telemetry.NewBridge(src, tx, telemetry.Options{
		Interval: time.Duration(cfg.SampleIntervalMS) * time.Millisecond,
		Capacity: cfg.QueueCapacity,
		Grace:    time.Duration(cfg.ShutdownGraceMS) * time.Millisecond,
	})
	if err := bridge.Start(); err != nil {
		return err
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("streamer: shutting down")
	return bridge.Stop()
}
