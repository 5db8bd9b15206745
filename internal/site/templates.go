package site

// pageTemplate is the Go html/template for each exported page.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.RootPath}}style.css">
</head>
<body>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="project-title">{{.SiteTitle}}</h2>
      <input type="text" id="search-input" placeholder="Search..." autocomplete="off" data-index="{{.BasePath}}search-index.json" data-base="{{.BasePath}}">
      <div class="search-results" id="search-results"></div>
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.NavHTML}}
    </div>
    <div class="locales">
      {{range .Locales}}<a href="{{$.RootPath}}{{.Code}}/index.html"{{if eq .Code $.Lang}} class="active"{{end}}>{{.Name}}</a>{{end}}
    </div>
  </nav>
  <main class="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">&#9776;</button>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">&#9681;</button>
    </div>
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
  <script src="{{.RootPath}}script.js"></script>
</body>
</html>`

// rootTemplate lists the exported locales.
const rootTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body class="root">
  <main class="content">
    <article class="page-content">
      <h1>{{.Title}}</h1>
      <ul class="locale-list">
        {{range .Locales}}<li><a href="{{.Code}}/index.html">{{.Name}}</a></li>
        {{end}}
      </ul>
    </article>
  </main>
</body>
</html>`

// cssContent is the stylesheet of the exported site. The category colours
// match the legend on the index page.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --code-bg: #f1f3f5;
  --sidebar-width: 280px;
}

[data-theme="dark"] {
  --bg: #1a1b26;
  --bg-sidebar: #16171f;
  --text: #c0caf5;
  --text-muted: #565f89;
  --border: #292e42;
  --accent: #7aa2f7;
  --code-bg: #1f2030;
}

*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.6;
  display: flex;
}

a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }

.sidebar {
  width: var(--sidebar-width);
  height: 100vh;
  position: sticky;
  top: 0;
  overflow-y: auto;
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  padding: 1rem;
  flex-shrink: 0;
}
.sidebar ul { list-style: none; }
.sidebar li.dir > ul { display: none; padding-left: 0.75rem; }
.sidebar li.dir.expanded > ul { display: block; }
.sidebar .dir-toggle { cursor: pointer; font-weight: 600; display: block; margin-top: 0.5rem; }
.sidebar a.active { font-weight: 600; }
#search-input { width: 100%; padding: 0.4rem; margin: 0.5rem 0; border: 1px solid var(--border); background: var(--bg); color: var(--text); }
.search-results a { display: block; font-size: 0.9rem; }
.locales { margin-top: 1rem; font-size: 0.85rem; }
.locales a { margin-right: 0.5rem; }
.locales a.active { font-weight: 600; }

.content { flex: 1; padding: 1.5rem 2rem; max-width: 900px; }
.top-bar { display: flex; justify-content: space-between; margin-bottom: 1rem; }
.top-bar button { background: none; border: 1px solid var(--border); color: var(--text); padding: 0.2rem 0.6rem; cursor: pointer; }
.menu-toggle { visibility: hidden; }

.page-content h1 { margin-bottom: 1rem; }
.page-content h2 { margin: 1.5rem 0 0.5rem; border-bottom: 1px solid var(--border); }
.page-content h3 { margin: 1rem 0 0.25rem; }
.page-content p, .page-content ul { margin-bottom: 0.75rem; }
.page-content ul { padding-left: 1.5rem; }
.page-content table { border-collapse: collapse; margin-bottom: 1rem; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: 0.25rem 0.75rem; }
.page-content pre { background: var(--code-bg); padding: 0.75rem; overflow-x: auto; font-size: 0.85rem; }
.node-image { float: right; width: 64px; height: 64px; }
.civ-help { margin-bottom: 1rem; }
.swatch { display: inline-block; width: 0.9rem; height: 0.9rem; vertical-align: middle; }

@media (max-width: 800px) {
  .sidebar { position: fixed; left: calc(-1 * var(--sidebar-width)); z-index: 10; transition: left 0.2s; }
  .sidebar.open { left: 0; }
  .menu-toggle { visibility: visible; }
}
`

// jsContent wires the theme toggle, the mobile sidebar and the search box.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  try {
    var stored = localStorage.getItem("techtree-theme");
    if (stored) { html.setAttribute("data-theme", stored); }
  } catch (e) {}

  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      var next = html.getAttribute("data-theme") === "dark" ? "light" : "dark";
      html.setAttribute("data-theme", next);
      try { localStorage.setItem("techtree-theme", next); } catch (e) {}
    });
  }

  var sidebar = document.getElementById("sidebar");
  var menuToggle = document.getElementById("menu-toggle");
  if (menuToggle && sidebar) {
    menuToggle.addEventListener("click", function() { sidebar.classList.toggle("open"); });
  }

  document.querySelectorAll(".dir-toggle").forEach(function(el) {
    el.addEventListener("click", function() { el.parentElement.classList.toggle("expanded"); });
  });

  var input = document.getElementById("search-input");
  var results = document.getElementById("search-results");
  if (!input || !results) { return; }
  var index = null;
  input.addEventListener("input", function() {
    var q = input.value.trim().toLowerCase();
    if (!q) { results.innerHTML = ""; return; }
    var render = function() {
      results.innerHTML = "";
      index.filter(function(e) {
        return e.title.toLowerCase().indexOf(q) >= 0 || e.content.toLowerCase().indexOf(q) >= 0;
      }).slice(0, 20).forEach(function(e) {
        var a = document.createElement("a");
        a.href = input.getAttribute("data-base") + e.path;
        a.textContent = e.title;
        results.appendChild(a);
      });
    };
    if (index) { render(); return; }
    fetch(input.getAttribute("data-index")).then(function(r) { return r.json(); }).then(function(data) {
      index = data;
      render();
    });
  });
})();
`
