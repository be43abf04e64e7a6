package libdoc

import (
	"slices"
	"strings"
)

// Preset describes where a well-known library keeps its documentation:
// the repository and directory holding the sources and the site they are
// published to. Cloning the repository is left to the user.
type Preset struct {
	Name       string   `json:"name"`
	Repo       string   `json:"repo"`
	DocsPath   string   `json:"docsPath"`
	BaseURL    string   `json:"baseUrl"`
	Branch     string   `json:"branch"`
	Extensions []string `json:"extensions"`
}

// RepoURL returns the GitHub URL of the preset's repository.
func (p *Preset) RepoURL() string {
	return "https://github.com/" + p.Repo
}

// Defaults for presets that leave Branch or Extensions empty.
var (
	DefaultPresetBranch     = "main"
	DefaultPresetExtensions = []string{".md", ".mdx"}
)

var presets = []Preset{
	{Name: "react", Repo: "reactjs/react.dev", DocsPath: "src/content", BaseURL: "https://react.dev"},
	{Name: "nextjs", Repo: "vercel/next.js", DocsPath: "docs", BaseURL: "https://nextjs.org/docs"},
	{Name: "vue", Repo: "vuejs/docs", DocsPath: "src", BaseURL: "https://vuejs.org"},
	{Name: "svelte", Repo: "sveltejs/svelte.dev", DocsPath: "apps/svelte.dev/content/docs", BaseURL: "https://svelte.dev/docs"},
	{Name: "nuxt", Repo: "nuxt/nuxt", DocsPath: "docs", BaseURL: "https://nuxt.com/docs"},
	{Name: "angular", Repo: "angular/angular", DocsPath: "adev/src/content", BaseURL: "https://angular.dev"},
	{Name: "solid", Repo: "solidjs/solid-docs", DocsPath: "src/routes", BaseURL: "https://docs.solidjs.com"},
	{Name: "astro", Repo: "withastro/docs", DocsPath: "src/content/docs", BaseURL: "https://docs.astro.build"},
	{Name: "remix", Repo: "remix-run/react-router", DocsPath: "docs", BaseURL: "https://remix.run/docs"},
	{Name: "tailwind", Repo: "tailwindlabs/tailwindcss.com", DocsPath: "src/docs", BaseURL: "https://tailwindcss.com/docs"},
	{Name: "shadcn", Repo: "shadcn-ui/ui", DocsPath: "apps/v4/content/docs", BaseURL: "https://ui.shadcn.com/docs"},
	{Name: "express", Repo: "expressjs/expressjs.com", DocsPath: "en", BaseURL: "https://expressjs.com"},
	{Name: "fastapi", Repo: "fastapi/fastapi", DocsPath: "docs/en/docs", BaseURL: "https://fastapi.tiangolo.com", Branch: "master"},
	{Name: "django", Repo: "django/django", DocsPath: "docs", BaseURL: "https://docs.djangoproject.com", Extensions: []string{".txt"}},
	{Name: "flask", Repo: "pallets/flask", DocsPath: "docs", BaseURL: "https://flask.palletsprojects.com", Extensions: []string{".rst"}},
	{Name: "hono", Repo: "honojs/website", DocsPath: "docs", BaseURL: "https://hono.dev"},
	{Name: "nestjs", Repo: "nestjs/docs.nestjs.com", DocsPath: "content", BaseURL: "https://docs.nestjs.com", Branch: "master"},
	{Name: "rails", Repo: "rails/rails", DocsPath: "guides/source", BaseURL: "https://guides.rubyonrails.org"},
	{Name: "laravel", Repo: "laravel/docs", DocsPath: ".", BaseURL: "https://laravel.com/docs", Branch: "11.x"},
	{Name: "bun", Repo: "oven-sh/bun", DocsPath: "docs", BaseURL: "https://bun.sh/docs"},
	{Name: "node", Repo: "nodejs/nodejs.org", DocsPath: "apps/site/pages/en", BaseURL: "https://nodejs.org/docs"},
	{Name: "deno", Repo: "denoland/docs", DocsPath: ".", BaseURL: "https://docs.deno.com"},
	{Name: "typescript", Repo: "microsoft/TypeScript-Website", DocsPath: "packages/documentation/copy/en", BaseURL: "https://www.typescriptlang.org/docs", Branch: "v2"},
	{Name: "python", Repo: "python/cpython", DocsPath: "Doc", BaseURL: "https://docs.python.org/3", Extensions: []string{".rst"}},
	{Name: "rust", Repo: "rust-lang/book", DocsPath: "src", BaseURL: "https://doc.rust-lang.org/book"},
	{Name: "go", Repo: "golang/go", DocsPath: "doc", BaseURL: "https://go.dev/doc"},
	{Name: "prisma", Repo: "prisma/docs", DocsPath: "content", BaseURL: "https://www.prisma.io/docs"},
	{Name: "drizzle", Repo: "drizzle-team/drizzle-orm", DocsPath: "docs", BaseURL: "https://orm.drizzle.team"},
	{Name: "sqlalchemy", Repo: "sqlalchemy/sqlalchemy", DocsPath: "doc/build", BaseURL: "https://docs.sqlalchemy.org", Extensions: []string{".rst"}},
	{Name: "supabase", Repo: "supabase/supabase", DocsPath: "apps/docs", BaseURL: "https://supabase.com/docs", Branch: "master"},
	{Name: "mongodb", Repo: "mongodb/docs", DocsPath: "source", BaseURL: "https://www.mongodb.com/docs", Branch: "master", Extensions: []string{".txt", ".rst"}},
	{Name: "redux", Repo: "reduxjs/redux", DocsPath: "docs", BaseURL: "https://redux.js.org"},
	{Name: "zustand", Repo: "pmndrs/zustand", DocsPath: "docs", BaseURL: "https://zustand-demo.pmnd.rs"},
	{Name: "tanstack-query", Repo: "TanStack/query", DocsPath: "docs", BaseURL: "https://tanstack.com/query"},
	{Name: "jotai", Repo: "pmndrs/jotai", DocsPath: "docs", BaseURL: "https://jotai.org"},
	{Name: "vitest", Repo: "vitest-dev/vitest", DocsPath: "docs", BaseURL: "https://vitest.dev"},
	{Name: "playwright", Repo: "microsoft/playwright", DocsPath: "docs/src", BaseURL: "https://playwright.dev/docs"},
	{Name: "jest", Repo: "jestjs/jest", DocsPath: "docs", BaseURL: "https://jestjs.io/docs"},
	{Name: "pytest", Repo: "pytest-dev/pytest", DocsPath: "doc/en", BaseURL: "https://docs.pytest.org", Extensions: []string{".rst"}},
	{Name: "cypress", Repo: "cypress-io/cypress-documentation", DocsPath: "docs", BaseURL: "https://docs.cypress.io"},
	{Name: "vite", Repo: "vitejs/vite", DocsPath: "docs", BaseURL: "https://vitejs.dev"},
	{Name: "esbuild", Repo: "evanw/esbuild", DocsPath: ".", BaseURL: "https://esbuild.github.io", Extensions: []string{".md"}},
	{Name: "webpack", Repo: "webpack/webpack.js.org", DocsPath: "src/content", BaseURL: "https://webpack.js.org"},
	{Name: "turbo", Repo: "vercel/turborepo", DocsPath: "docs/site/content", BaseURL: "https://turbo.build/repo/docs"},
	{Name: "langchain", Repo: "langchain-ai/langchainjs", DocsPath: "docs/core_docs", BaseURL: "https://js.langchain.com/docs"},
	{Name: "openai", Repo: "openai/openai-python", DocsPath: ".", BaseURL: "https://platform.openai.com/docs", Extensions: []string{".md"}},
	{Name: "anthropic", Repo: "anthropics/anthropic-sdk-python", DocsPath: ".", BaseURL: "https://docs.anthropic.com", Extensions: []string{".md"}},
	{Name: "huggingface", Repo: "huggingface/transformers", DocsPath: "docs/source/en", BaseURL: "https://huggingface.co/docs/transformers"},
	{Name: "graphql", Repo: "graphql/graphql.github.io", DocsPath: "src/pages", BaseURL: "https://graphql.org", Branch: "source"},
	{Name: "apollo", Repo: "apollographql/apollo-client", DocsPath: "docs/source", BaseURL: "https://www.apollographql.com/docs/react"},
	{Name: "zod", Repo: "colinhacks/zod", DocsPath: ".", BaseURL: "https://zod.dev", Extensions: []string{".md"}},
	{Name: "axios", Repo: "axios/axios", DocsPath: ".", BaseURL: "https://axios-http.com/docs", Extensions: []string{".md"}},
	{Name: "trpc", Repo: "trpc/trpc", DocsPath: "www/docs", BaseURL: "https://trpc.io/docs"},
	{Name: "react-native", Repo: "facebook/react-native-website", DocsPath: "docs", BaseURL: "https://reactnative.dev/docs"},
	{Name: "expo", Repo: "expo/expo", DocsPath: "docs", BaseURL: "https://docs.expo.dev"},
	{Name: "flutter", Repo: "flutter/website", DocsPath: "src/content", BaseURL: "https://docs.flutter.dev"},
	{Name: "docker", Repo: "docker/docs", DocsPath: "content", BaseURL: "https://docs.docker.com"},
	{Name: "kubernetes", Repo: "kubernetes/website", DocsPath: "content/en/docs", BaseURL: "https://kubernetes.io/docs"},
	{Name: "terraform", Repo: "hashicorp/terraform", DocsPath: "docs", BaseURL: "https://developer.hashicorp.com/terraform/docs"},
}

// FindPreset returns the preset named name, ignoring case, with defaults
// filled in. Returns ENOTFOUND for an unknown name.
func FindPreset(name string) (*Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range presets {
		if presets[i].Name == name {
			return withPresetDefaults(presets[i]), nil
		}
	}
	return nil, Errorf(ENOTFOUND, "no preset named %q", name)
}

// Presets returns every preset ordered by name, with defaults filled in.
func Presets() []*Preset {
	out := make([]*Preset, len(presets))
	for i, p := range presets {
		out[i] = withPresetDefaults(p)
	}
	slices.SortFunc(out, func(a, b *Preset) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func withPresetDefaults(p Preset) *Preset {
	if p.Branch == "" {
		p.Branch = DefaultPresetBranch
	}
	if len(p.Extensions) == 0 {
		p.Extensions = DefaultPresetExtensions
	}
	p.Extensions = slices.Clone(p.Extensions)
	return &p
}
