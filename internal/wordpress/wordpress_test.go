package wordpress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Blog</title>
  <link rel="stylesheet" href="css/style.css">
</head>
<body class="home">
  <header class="site-header">
    <nav id="main-nav" class="primary-navigation">
      <ul class="menu nav-list">
        <li><a href="/">Home</a></li>
        <li><a href="/blog">Blog</a></li>
        <li><a href="/contact">Contact</a></li>
      </ul>
    </nav>
  </header>
  <main id="content">
    <img src="images/hero.jpg" alt="Hero">
    <div id="posts">
      <article class="post"><h2>One</h2><p>1</p></article>
      <article class="post"><h2>Two</h2><p>2</p></article>
      <article class="post"><h2>Three</h2><p>3</p></article>
    </div>
    <div class="features">
      <div class="feature"><h3>A</h3></div>
      <div class="feature"><h3>B</h3></div>
      <div class="feature"><h3>C</h3></div>
    </div>
  </main>
  <footer><p>Footer</p></footer>
  <script src="js/app.js"></script>
</body>
</html>`

func TestConvert_PageWrapper(t *testing.T) {
	out, rep, err := Convert(samplePage, Options{ThemeName: "acme"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<?php\n/**\n * Template Name: Custom Page Template\n *\n * @package acme\n */\n\nget_header();\n?>\n\n"), out)
	assert.True(t, strings.HasSuffix(out, "\n\n<?php\nget_sidebar();\nget_footer();\n"))
	assert.NotContains(t, out, "<body")
	assert.NotContains(t, out, "<head")
	assert.NotContains(t, out, "<title>")
	assert.Equal(t, "acme", rep.Theme)
}

func TestConvert_Assets(t *testing.T) {
	out, rep, err := Convert(samplePage, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, `src="<?php echo esc_url(get_template_directory_uri() . '/images/hero.jpg'); ?>"`)
	assert.Contains(t, out, `src="<?php echo esc_url(get_template_directory_uri() . '/js/app.js'); ?>"`)
	assert.NotContains(t, out, "&lt;?php")

	var kinds []string
	for _, a := range rep.Assets {
		kinds = append(kinds, a.Type)
	}
	// The stylesheet link lives in <head>, which is dropped from the page
	// body but still rewritten and reported.
	assert.Equal(t, []string{"img", "css", "js"}, kinds)
	assert.Equal(t, DefaultTheme, rep.Theme)
}

func TestConvert_NavMenu(t *testing.T) {
	out, rep, err := Convert(samplePage, Options{ThemeName: "acme"})
	require.NoError(t, err)

	assert.Contains(t, out, `<nav class="primary-navigation" id="main-nav"><?php
wp_nav_menu(array(
    'theme_location' => 'main_nav',
    'menu_class'     => 'menu nav-list',
    'container'      => false,
    'fallback_cb'    => false,
));
?></nav>`)
	assert.NotContains(t, out, "<li>")

	require.NotEmpty(t, rep.Loops)
	assert.Equal(t, report.LoopRecord{Element: "Navigation menu: Main Nav", LoopType: "wp_nav_menu()"}, rep.Loops[0])
	assert.Contains(t, rep.Suggestions,
		"Register menu location 'main_nav' in functions.php:\n    register_nav_menus(array('main_nav' => __('Main Nav', 'acme')));")

	menus := 0
	for _, l := range rep.Loops {
		if l.LoopType == NavMenuLoop {
			menus++
		}
	}
	assert.Equal(t, 1, menus)
}

func TestConvert_TemplateParts(t *testing.T) {
	_, rep, err := Convert(samplePage, Options{})
	require.NoError(t, err)

	var names []string
	for _, r := range rep.Regions {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"header", "footer", "content"}, names)
	assert.Equal(t, "Detected header element(s)", rep.Regions[0].Reason)
	assert.Equal(t, "Detected main element(s)", rep.Regions[2].Reason)
	assert.Contains(t, rep.Suggestions, "Consider extracting header to template-parts/header.php")
	assert.Contains(t, rep.Suggestions, "Consider extracting main to template-parts/content.php")
}

func TestConvert_PostLoop(t *testing.T) {
	_, rep, err := Convert(samplePage, Options{})
	require.NoError(t, err)

	assert.Contains(t, rep.Loops, report.LoopRecord{Element: "Post list in 'posts'", LoopType: PostLoop})

	var loopHint, genericHint bool
	for _, s := range rep.Suggestions {
		if strings.HasPrefix(s, "Replace repeated articles in 'posts' with WordPress The Loop:\n") &&
			strings.Contains(s, "get_template_part('template-parts/content', get_post_type())") {
			loopHint = true
		}
		if s == "Consider using a loop for repeated elements in 'features' (3 similar children found)" {
			genericHint = true
		}
	}
	assert.True(t, loopHint, "suggestions: %v", rep.Suggestions)
	assert.True(t, genericHint, "suggestions: %v", rep.Suggestions)
}

func TestConvert_PostByClass(t *testing.T) {
	_, rep, err := Convert(`<section class="list">
		<div class="blog-Post"><h2></h2></div>
		<div class="blog-Post"><h2></h2></div>
		<div class="blog-Post"><h2></h2></div>
	</section>`, Options{})
	require.NoError(t, err)
	require.Len(t, rep.Loops, 1)
	assert.Equal(t, "Post list in 'list'", rep.Loops[0].Element)
}

func TestMenuNames(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantName string
	}{
		{"id with underscores", `<nav id="footer_menu"><ul><li><a>a</a></li><li><a>b</a></li></ul></nav>`, "Footer Menu"},
		{"class token", `<nav class="wrap top-menu"><ul><li><a>a</a></li><li><a>b</a></li></ul></nav>`, "Top Menu"},
		{"aria label kept", `<nav aria-label="Social links"><ul><li><a>a</a></li><li><a>b</a></li></ul></nav>`, "Social links"},
		{"default", `<nav><ul><li><a>a</a></li><li><a>b</a></li></ul></nav>`, "Primary Menu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rep, err := Convert(tt.src, Options{})
			require.NoError(t, err)
			require.Len(t, rep.Loops, 1)
			assert.Equal(t, NavMenuPrefix+tt.wantName, rep.Loops[0].Element)
		})
	}
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "primary_menu", Location("Primary Menu"))
	assert.Equal(t, "social_links", Location("Social-links"))
}

func TestConvert_InlineStyleKeepsPHP(t *testing.T) {
	out, _, err := Convert(`<div style="background-image: url(images/bg.png)"></div>`, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, `style="background-image: url('<?php echo esc_url(get_template_directory_uri() . '/images/bg.png'); ?>')"`)
}

func TestConvert_Idempotent(t *testing.T) {
	first, _, err := Convert(samplePage, Options{})
	require.NoError(t, err)

	_, rep, err := Convert(first, Options{})
	require.NoError(t, err)
	assert.Empty(t, rep.Assets)
}
