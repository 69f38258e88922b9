package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `
client:
  debug: true
  tag: test
  network:
    address: localhost:9000
    endpoint: /room
  room:
    name: demo
    userId: u1
    userName: Alice
  caps:
    browser: firefox
    canPresent: true
  monitoring:
    port: 6601
    metricEnabled: true
webrtc:
  logLevel: 2
  iceServers:
    - urls: stun:stun.example.org:3478
  icePorts:
    min: 10000
    max: 11000
`

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	var conf ClientConfig
	if err := LoadConfig(&conf, dir); err != nil {
		t.Fatal(err)
	}
	if !conf.Client.Debug || conf.Client.Tag != "test" {
		t.Errorf("client: %+v", conf.Client)
	}
	if conf.Client.Network.Address != "localhost:9000" || conf.Client.Network.Endpoint != "/room" {
		t.Errorf("network: %+v", conf.Client.Network)
	}
	if conf.Client.Room.UserId != "u1" || conf.Client.Room.UserName != "Alice" {
		t.Errorf("room: %+v", conf.Client.Room)
	}
	if !conf.Client.Monitoring.MetricEnabled || !conf.Client.Monitoring.IsEnabled() {
		t.Errorf("monitoring: %+v", conf.Client.Monitoring)
	}
	if len(conf.Webrtc.IceServers) != 1 || conf.Webrtc.IceServers[0].Urls != "stun:stun.example.org:3478" {
		t.Errorf("ice servers: %+v", conf.Webrtc.IceServers)
	}
	if !conf.Webrtc.HasPortRange() {
		t.Errorf("port range: %+v", conf.Webrtc.IcePorts)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ROOM_CLIENT_CLIENT_ROOM_NAME", "override")

	var conf ClientConfig
	if err := LoadConfigEnv(&conf); err != nil {
		t.Fatal(err)
	}
	if conf.Client.Room.Name != "override" {
		t.Errorf("env ignored: %q", conf.Client.Room.Name)
	}
}

func TestPortRange(t *testing.T) {
	var w Webrtc
	if w.HasPortRange() {
		t.Error("empty range accepted")
	}
	w.IcePorts.Min, w.IcePorts.Max = 1000, 2000
	if !w.HasPortRange() {
		t.Error("range rejected")
	}
}
