// Package render writes a graph's output to audio files offline.
package render

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/thomas-dumonet/tracktion-engine/graph"
	"github.com/thomas-dumonet/tracktion-engine/signal"
)

const wavAudioFormat = 1

// WAV prepares the graph rooted at root, processes numBlocks blocks and
// encodes the result to w as 16-bit PCM.
func WAV(w io.WriteSeeker, root graph.Node, cfg graph.Config, numBlocks int) error {
	props := root.Properties()
	if props.Channels == 0 {
		return fmt.Errorf("render: graph produces no audio")
	}

	player := graph.NewPlayer(root, cfg)
	player.Prepare()

	e := wav.NewEncoder(w, int(cfg.SampleRate), 16, props.Channels, wavAudioFormat)
	buf := audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: props.Channels,
			SampleRate:  int(cfg.SampleRate),
		},
		SourceBitDepth: 16,
	}
	for i := 0; i < numBlocks; i++ {
		out := player.Process()
		buf.Data = out.Audio.AsInterInt(signal.BitDepth16)
		if err := e.Write(&buf); err != nil {
			return fmt.Errorf("render: writing block %d: %w", i, err)
		}
	}
	return e.Close()
}
