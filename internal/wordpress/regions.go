package wordpress

import (
	"fmt"
	"strings"

	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
	"github.com/Piqzaa/HTML-to-Twig/internal/regions"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

// PostLoop is the loop type recorded for post lists.
const PostLoop = "WordPress The Loop (while have_posts())"

func (d *dialect) RegionFound(name, selector string, rep *report.Report) {
	rep.AddRegion(name, fmt.Sprintf("Detected %s element(s)", selector))
	rep.AddSuggestion(fmt.Sprintf("Consider extracting %s to template-parts/%s.php", selector, name))
}

func (d *dialect) RepetitionFound(r regions.Repetition, rep *report.Report) {
	if !postLike(r) {
		rep.AddSuggestion(fmt.Sprintf("Consider using a loop for repeated elements in '%s' (%d similar children found)", r.Name, r.Count()))
		return
	}
	rep.AddLoop(report.LoopRecord{Element: fmt.Sprintf("Post list in '%s'", r.Name), LoopType: PostLoop})
	rep.AddSuggestion(fmt.Sprintf("Replace repeated articles in '%s' with WordPress The Loop:\n"+
		"    <?php if (have_posts()) : while (have_posts()) : the_post(); ?>\n"+
		"        <?php get_template_part('template-parts/content', get_post_type()); ?>\n"+
		"    <?php endwhile; endif; ?>", r.Name))
}

// postLike reports whether the repeated children look like blog posts.
func postLike(r regions.Repetition) bool {
	first := r.Children[0]
	if first.Data == "article" {
		return true
	}
	for _, c := range dom.Classes(first) {
		if strings.Contains(strings.ToLower(c), "post") {
			return true
		}
	}
	return false
}
