package reddit

import (
	"fmt"
	"strings"

	"last30days/internal/domain/research"
)

const promptTemplate = `Search Reddit for DISCUSSION THREADS about: %[1]s

DATE RANGE: Only include threads from %[2]s to %[3]s (last 30 days).

SEARCH GUIDANCE:
- Search for "site:reddit.com/r/ %[1]s" to find subreddit discussions
- ONLY include URLs containing "/r/" and "/comments/" (actual discussion threads)
- IGNORE: developers.reddit.com, business.reddit.com, reddit.com/user/

CRITICAL DATE REQUIREMENT:
- ONLY include threads posted AFTER %[2]s
- Do NOT include threads older than %[2]s, even if they seem relevant
- If you cannot find enough recent threads, return FEWER results rather than older ones
- It is better to return 3 recent threads than 15 old ones

Find %[4]d-%[5]d relevant Reddit discussion threads from the last 30 days.

For EACH Reddit thread URL (containing /r/subreddit/comments/), extract:
- Thread title
- Full Reddit URL
- Subreddit name
- Date (MUST be after %[2]s, otherwise do not include)
- Why it's relevant

Return ONLY valid JSON:
{
  "items": [
    {
      "title": "Thread title",
      "url": "https://www.reddit.com/r/subreddit/comments/abc123/title/",
      "subreddit": "subreddit_name",
      "date": "YYYY-MM-DD or null",
      "why_relevant": "Relevance to %[1]s",
      "relevance": 0.85
    }
  ]
}

Rules:
- ONLY URLs matching: reddit.com/r/*/comments/*
- ONLY threads from %[2]s to %[3]s
- relevance: 0.0-1.0
- Diverse subreddits preferred
- Fewer recent results is better than many old results`

// BuildPrompt renders the discovery prompt for one topic and window.
func BuildPrompt(topic string, window research.Window, depth research.DepthSpec) string {
	return fmt.Sprintf(promptTemplate,
		strings.TrimSpace(topic),
		window.From,
		window.To,
		depth.MinItems,
		depth.MaxItems,
	)
}
