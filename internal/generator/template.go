package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentforge/contentforge/internal/content"
)

// TemplateGenerator produces deterministic per-type prose by interpolating
// title and prompt into fixed templates. No randomness, no external call:
// identical inputs yield byte-identical output.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Templates take the title as %[1]s and the prompt as %[2]s.
const (
	blogTemplate = "# %[1]s\n\n## Introduction\n\nIn today's fast-paced digital world, %[2]s has become increasingly important. This blog post explores the key aspects and provides valuable insights.\n\n## Main Points\n\n1. Understanding the basics of %[2]s\n2. How %[2]s impacts modern businesses\n3. Best practices for implementing %[2]s strategies\n\n## Conclusion\n\nAs we've seen, %[2]s plays a crucial role in today's landscape. By following the guidelines outlined in this post, you'll be well-equipped to leverage its potential for your success."

	marketingTemplate = "# %[1]s\n\n**Are you ready to transform your business with %[2]s?**\n\nIntroducing our revolutionary approach to %[2]s that will skyrocket your results!\n\n## Why Choose Our Solution?\n\n✅ Instant results\n✅ Cost-effective implementation\n✅ Expert support\n\nDon't miss this opportunity to stay ahead of your competition. Contact us today to learn more about how %[2]s can benefit your business."

	storyTemplate = "# %[1]s\n\nOnce upon a time in a world where %[2]s was the most precious resource, there lived a young adventurer named Alex.\n\nAlex had always been fascinated by the mysteries of %[2]s, spending countless hours studying ancient texts that described its magical properties.\n\nOne stormy night, a mysterious stranger arrived at Alex's door with a map that supposedly led to the greatest source of %[2]s ever discovered.\n\nThus began an epic journey across treacherous mountains, through enchanted forests, and into the depths of forgotten caves.\n\nAfter many trials and tribulations, Alex finally discovered the source, but learned that the true value of %[2]s wasn't in possessing it, but in sharing its benefits with the world."

	socialTemplate = "# %[1]s\n\n📣 Game-changing insights about %[2]s you can't afford to miss! 🚀\n\nWe've just published our latest research on how %[2]s is transforming the industry. Key takeaways:\n\n• Innovation is happening faster than ever\n• Early adopters are seeing 3x better results\n• The future is here, and it's all about %[2]s\n\nDouble tap if you're as excited about %[2]s as we are! 👇\n\n#%[3]s #Innovation #FutureIsBright"

	genericTemplate = "# %[1]s\n\nThis is generated content about %[2]s. The possibilities are endless when it comes to AI-generated content!"
)

func (g *TemplateGenerator) Generate(ctx context.Context, title, contentType, prompt string) (string, error) {
	switch contentType {
	case content.TypeBlog:
		return fmt.Sprintf(blogTemplate, title, prompt), nil
	case content.TypeMarketing:
		return fmt.Sprintf(marketingTemplate, title, prompt), nil
	case content.TypeStory:
		return fmt.Sprintf(storyTemplate, title, prompt), nil
	case content.TypeSocial:
		return fmt.Sprintf(socialTemplate, title, prompt, hashtag(prompt)), nil
	default:
		return fmt.Sprintf(genericTemplate, title, prompt), nil
	}
}

// hashtag strips all whitespace from the prompt for the trailing tag line.
func hashtag(prompt string) string {
	return strings.Join(strings.Fields(prompt), "")
}
