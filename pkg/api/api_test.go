package api

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestPacketRoundTrip(t *testing.T) {
	out := Out{Id: "01", T: ReceiveVideoFrom, Payload: ReceiveVideoFromRequest{
		UserId: "7", Type: Presentation, SdpOffer: "v=0",
	}}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}

	var in In
	if err := json.Unmarshal(data, &in); err != nil {
		t.Fatal(err)
	}
	if in.Id != "01" || in.T != ReceiveVideoFrom {
		t.Fatalf("bad envelope: %+v", in)
	}
	rq := Unwrap[ReceiveVideoFromRequest](in.Payload)
	if rq == nil {
		t.Fatal("payload lost")
	}
	if rq.UserId != "7" || rq.Type != Presentation || rq.SdpOffer != "v=0" {
		t.Errorf("bad payload: %+v", rq)
	}
}

func TestUnwrapMalformed(t *testing.T) {
	if Unwrap[PresenterReadyRequest]([]byte(`{"userId":1}`)) != nil {
		t.Error("type mismatch not rejected")
	}
	if Unwrap[PresenterReadyRequest]([]byte(`{{`)) != nil {
		t.Error("broken json not rejected")
	}
}

func TestEmptyPayloadOmitted(t *testing.T) {
	data, err := json.Marshal(Out{T: StopPresenting})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"t":204}` {
		t.Errorf("unexpected wire form: %s", data)
	}
}

func TestPacketTypeNames(t *testing.T) {
	tests := []struct {
		pt   PT
		name string
	}{
		{CompositeInfo, "CompositeInfo"},
		{PresenterReady, "PresenterReady"},
		{IceCandidate, "IceCandidate"},
		{StopRecord, "StopRecord"},
		{PT(250), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.pt.String(); got != tc.name {
			t.Errorf("%v: %q != %q", uint8(tc.pt), got, tc.name)
		}
	}
}

func TestValidChannel(t *testing.T) {
	if !ValidChannel(Composite) || !ValidChannel(Presentation) {
		t.Error("known channels rejected")
	}
	if ValidChannel("") || ValidChannel("video") {
		t.Error("unknown channels accepted")
	}
}
