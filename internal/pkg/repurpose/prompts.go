package repurpose

import "fmt"

// Platform identifiers accepted by the repurpose operation. Anything else is
// silently dropped from the result.
const (
	PlatformTwitter    = "twitter"
	PlatformLinkedIn   = "linkedin"
	PlatformInstagram  = "instagram"
	PlatformNewsletter = "newsletter"
)

// The prompts encode per-platform format constraints. They are best-effort
// instructions to the model, not an enforced contract; the output is
// returned verbatim apart from whitespace trimming.

func twitterPrompt(content, tone string) string {
	return fmt.Sprintf(`Repurpose this content into a Twitter thread with %s tone.
Requirements:
- Each tweet max 280 characters
- Create 3-5 connected tweets
- Use emojis and hashtags
- Make it engaging for Twitter audience
- Number the tweets (1/5, 2/5, etc.)

Original content: %s

Format as: Tweet 1: [content]
Tweet 2: [content]
etc.`, tone, content)
}

func linkedInPrompt(content, tone string) string {
	return fmt.Sprintf(`Repurpose this content into a LinkedIn post with %s tone.
Requirements:
- 200-300 words
- Professional and insightful
- Include relevant hashtags
- Add a call-to-action
- Structure with paragraphs and bullet points if appropriate

Original content: %s`, tone, content)
}

func instagramPrompt(content, tone string) string {
	return fmt.Sprintf(`Create an Instagram caption for this content with %s tone.
Requirements:
- Engaging caption (100-150 words)
- Include relevant emojis
- Add 10-15 relevant hashtags
- Make it visually appealing in text form
- End with a question or call-to-action

Original content: %s

Format as: Caption text followed by hashtags on new lines.`, tone, content)
}

func newsletterPrompt(content, tone string) string {
	return fmt.Sprintf(`Repurpose this content into a newsletter article with %s tone.
Requirements:
- 300-500 words
- Casual, storytelling style
- Engaging introduction and conclusion
- Break into sections with subheadings
- Include practical takeaways
- Make it conversational and relatable

Original content: %s`, tone, content)
}

// promptFor returns the platform prompt builder, or nil for unknown platforms.
func promptFor(platform string) func(content, tone string) string {
	switch platform {
	case PlatformTwitter:
		return twitterPrompt
	case PlatformLinkedIn:
		return linkedInPrompt
	case PlatformInstagram:
		return instagramPrompt
	case PlatformNewsletter:
		return newsletterPrompt
	default:
		return nil
	}
}
