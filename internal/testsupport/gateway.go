package testsupport

import (
	"context"

	"scribe/internal/asr"
)

// FakeGateway is a scriptable asr.Gateway for pipeline tests. Each hook may
// be nil, in which case a small canned result is returned.
type FakeGateway struct {
	TranscribeFunc func(ctx context.Context, audioPath, language string) (asr.Transcript, error)
	AlignFunc      func(ctx context.Context, segments []asr.Segment, audioPath, language string) ([]asr.Segment, error)
	DiarizeFunc    func(ctx context.Context, audioPath string, minSpeakers, maxSpeakers int) ([]asr.SpeakerInterval, error)

	TranscribeCalls int
	AlignCalls      int
	DiarizeCalls    int
}

var _ asr.Gateway = (*FakeGateway)(nil)

func (g *FakeGateway) Transcribe(ctx context.Context, audioPath, language string) (asr.Transcript, error) {
	g.TranscribeCalls++
	if g.TranscribeFunc != nil {
		return g.TranscribeFunc(ctx, audioPath, language)
	}
	return asr.Transcript{
		Segments: []asr.Segment{
			{Start: 0, End: 2.5, Text: "hello there"},
			{Start: 2.5, End: 5, Text: "hi, how are you"},
		},
		Language: "en",
	}, nil
}

func (g *FakeGateway) Align(ctx context.Context, segments []asr.Segment, audioPath, language string) ([]asr.Segment, error) {
	g.AlignCalls++
	if g.AlignFunc != nil {
		return g.AlignFunc(ctx, segments, audioPath, language)
	}
	return segments, nil
}

func (g *FakeGateway) Diarize(ctx context.Context, audioPath string, minSpeakers, maxSpeakers int) ([]asr.SpeakerInterval, error) {
	g.DiarizeCalls++
	if g.DiarizeFunc != nil {
		return g.DiarizeFunc(ctx, audioPath, minSpeakers, maxSpeakers)
	}
	return []asr.SpeakerInterval{
		{Start: 0, End: 2.5, Speaker: "SPEAKER_00"},
		{Start: 2.5, End: 5, Speaker: "SPEAKER_01"},
	}, nil
}

func (g *FakeGateway) AssignSpeakers(segments []asr.Segment, intervals []asr.SpeakerInterval) []asr.Segment {
	return asr.Assign(segments, intervals)
}
