package main

import (
	"net/url"
	"os"
	osignal "os/signal"
	"syscall"

	"github.com/openmeet/roomclient/pkg/caps"
	"github.com/openmeet/roomclient/pkg/config"
	"github.com/openmeet/roomclient/pkg/logger"
	"github.com/openmeet/roomclient/pkg/metrics"
	"github.com/openmeet/roomclient/pkg/monitoring"
	"github.com/openmeet/roomclient/pkg/room"
	"github.com/openmeet/roomclient/pkg/rtc"
	"github.com/openmeet/roomclient/pkg/service"
	"github.com/openmeet/roomclient/pkg/signal"
	"github.com/prometheus/client_golang/prometheus"
)

// peerFactory adapts the concrete peer constructor to the session's
// interface without ever returning a typed nil.
type peerFactory struct {
	f *rtc.ApiFactory
}

func (p peerFactory) NewPeer(o rtc.PeerOptions) (room.MediaPeer, string, error) {
	peer, offer, err := p.f.NewPeer(o)
	if err != nil {
		return nil, "", err
	}
	return peer, offer, nil
}

// autoCancelPicker stands in for the interactive capture-source dialog
// in a headless run: every request is cancelled right away.
type autoCancelPicker struct{}

func (autoCancelPicker) Request(_ func(string), onCancel func()) {
	if onCancel != nil {
		onCancel()
	}
}

func main() {
	conf, err := config.NewClientConfig()
	if err != nil {
		logger.Default().Fatal().Err(err).Msg("config load failed")
	}
	conf.ParseFlags()

	log := logger.NewConsole(conf.Client.Debug, conf.Client.Tag, false)
	log.Info().Msgf("Room client [%v]", conf.Client.Room.Name)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	factory, err := rtc.NewApiFactory(conf.Webrtc, log, nil, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("WebRTC init failed")
	}

	addr := url.URL{Scheme: "ws", Host: conf.Client.Network.Address, Path: conf.Client.Network.Endpoint}
	if conf.Client.Network.Secure {
		addr.Scheme = "wss"
	}
	sig, err := signal.Connect(addr, log)
	if err != nil {
		log.Fatal().Err(err).Msgf("couldn't connect to %v", addr.String())
	}

	session := room.New(
		conf.Client.Room,
		sig,
		peerFactory{f: factory},
		caps.New(conf.Client.Caps, autoCancelPicker{}),
		room.LogNotifier{Log: log},
		m,
		log,
	)
	sig.OnPacket(session.HandlePacket)

	var services service.Group
	if conf.Client.Monitoring.IsEnabled() {
		services.Add(monitoring.New(conf.Client.Monitoring, reg, log))
	}
	services.Start()

	go session.Run()
	sig.Listen()
	session.Start()

	exit := make(chan os.Signal, 1)
	osignal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-exit:
		session.Leave()
		<-session.Done()
	case <-sig.Wait():
		log.Warn().Msg("Signaling connection lost")
		session.Stop()
	case <-session.Done():
	}

	sig.Close()
	if err := services.Stop(); err != nil {
		log.Error().Err(err).Msg("service shutdown failed")
	}
	log.Info().Msg("All done!")
}
