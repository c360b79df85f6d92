// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

// Examples are the quick examples per command, shown by --tldr when tldr is
// not installed and rendered into the tldr pages by tools/docgen.
var Examples = map[string][][2]string{
	"browse": {
		{"talks browse", "Browse from the home page"},
		{"talks browse /talks/go-proverbs", "Open a talk directly"},
		{"talks browse '/search?q=concurrency'", "Start with search results"},
	},
	"home": {
		{"talks home", "List the featured talks"},
		{"talks home -t --sort=-views", "Most viewed first, with titles"},
		{"talks home -a published-at::t -o json", "Add publish dates in local time as JSON"},
	},
	"random": {
		{"talks random", "Show a random talk"},
		{"talks random -a .id -o yaml", "Include the talk id"},
	},
	"search": {
		{"talks search concurrency", "Search for a phrase"},
		{"talks search go -f 'views>10k'", "Only popular results"},
		{"talks search go -a duration::d -f 'duration<20m,published-at>2019'", "Short recent talks, with running times"},
		{"talks search space -f 'tags@science'", "Results tagged science"},
	},
	"serve": {
		{"talks serve -u https://talks.example.com/v1", "Run the API with a memory cache"},
		{"talks serve -u https://talks.example.com/v1 --cache disk", "Cache upstream responses on disk"},
		{"talks serve -u https://talks.example.com/v1 --cache s3 --cache-bucket talks-cache", "Share a cache through S3"},
	},
	"talk": {
		{"talks talk go-proverbs", "Show one talk"},
		{"talks talk go-proverbs -r", "List the related talks"},
	},
	"cache": {
		{"talks cache purge", "Remove entries older than a day"},
		{"talks cache purge --hours 1", "Remove entries older than an hour"},
	},
}
