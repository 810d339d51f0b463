// Package patch wires the synthesis components into a playable voice.
//
// A [Config] names one source (oscillator, phase modulator, chord or
// cluster), an optional duration gate and an optional double-comb chorus.
// Configs are plain JSON so they can be edited by hand and reloaded while
// a host is running:
//
//	{
//	  "sampleRate": 48000,
//	  "gainDB": -6,
//	  "source": {"type": "chord", "waveform": "sine", "frequency": 220,
//	             "quality": "minor", "octaves": 2},
//	  "gate":   {"pieceLength": 4, "start": 0.5, "end": 3.5},
//	  "chorus": {"maxDelay": 0.05, "tapOne": 0.011, "tapTwo": 0.017,
//	             "feedbackOne": 0.5, "feedbackTwo": 0.5}
//	}
//
// Sources are created through a [Registry] so hosts can add their own.
// [Build] uses [DefaultRegistry].
package patch
