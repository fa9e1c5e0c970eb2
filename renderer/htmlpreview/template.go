package htmlpreview

// previewTemplate is the full preview document. Page divs are fixed A4
// boxes with box-sizing: border-box so the margin padding never changes
// the outer size; @media print reuses the same boxes for the browser
// print surface.
const previewTemplate = `<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{if .WebfontURL}}<link rel="stylesheet" href="{{.WebfontURL}}">{{end}}
<style>
* { box-sizing: border-box; }
body { margin: 0; background: #9a9a9a; font-family: sans-serif; }
.page {
	position: relative;
	width: 210mm;
	height: 297mm;
	margin: 8mm auto;
	background: #fff;
	box-shadow: 0 2px 8px rgba(0,0,0,.35);
	overflow: hidden;
}
.margin-overlay {
	position: absolute;
	border: 1px dashed #7ab;
	pointer-events: none;
}
.product-title-row { display: flex; justify-content: space-between; align-items: baseline; gap: 8px; }
.product-title-row .product-title { flex: 1 1 auto; }
.product-title-row .product-price { flex: 0 0 auto; white-space: nowrap; }
.feature-row img, .note img, .legend-icon { vertical-align: middle; }
.note { display: flex; gap: 2mm; align-items: flex-start; }
.legend-entry { display: flex; gap: 2mm; align-items: flex-start; }
.product-label { display: inline-block; padding: 0 4px; border-radius: 3px; color: #fff; font-size: 10px; margin-left: 4px; }
.service-line { position: absolute; }
{{.Style}}
@page { size: A4; margin: 0; }
@media print {
	body { background: none; }
	.page { margin: 0; box-shadow: none; page-break-after: always; }
	.margin-overlay { display: none; }
}
</style>
</head>
<body>
{{range .Pages}}
<div class="page" data-page-preview="{{.Number}}" style="{{.PagePadding}}">
	{{if $.MarginOverlay}}<div class="margin-overlay" style="{{.OverlayBox}}"></div>{{end}}
	{{range .Slices}}
	<div class="category">
		{{if not .IsRepeatedTitle}}
		<div class="category-title">{{.Title}}</div>
		{{range .Notes}}
		<div class="note">
			{{if .IconURL}}<img class="note-icon" src="{{.IconURL}}" alt="">{{end}}
			<div>
				<div class="note-title">{{.Title}}</div>
				<div class="note-text">{{.Text}}</div>
			</div>
		</div>
		{{end}}
		{{end}}
		{{range .Products}}
		<div class="product">
			<div class="product-title-row">
				<span class="product-title">{{.Title}}{{with .Label}}<span class="product-label" style="background: {{.Color}}">{{.Title}}</span>{{end}}</span>
				{{if .Price}}<span class="product-price">{{.Price}}</span>{{end}}
			</div>
			{{if .Description}}<div class="product-desc">{{.Description}}</div>{{end}}
			{{if .DescriptionEN}}<div class="product-desc-en">{{.DescriptionEN}}</div>{{end}}
			{{if .Suffix}}<div class="product-suffix">{{.Suffix}}</div>{{end}}
			{{range .Variants}}<div class="product-variant">{{.}}</div>{{end}}
			{{if .Features}}
			<div class="feature-row">
				{{range .Features}}{{if .IconURL}}<img class="feature-icon" src="{{.IconURL}}" alt="{{.Title}}" title="{{.Title}}">{{end}}{{end}}
			</div>
			{{end}}
			{{if .Allergens}}<div class="product-allergens">{{.Allergens}}</div>{{end}}
		</div>
		{{end}}
	</div>
	{{end}}
	{{if .ServiceLine}}<div class="service-line" style="{{.ServiceLineStyle}}">{{.ServiceLine}}</div>{{end}}
</div>
{{end}}
{{range .LegendPages}}
<div class="page" data-page-preview="{{.Number}}" style="{{.PagePadding}}">
	{{if $.MarginOverlay}}<div class="margin-overlay" style="{{.OverlayBox}}"></div>{{end}}
	{{if .ShowHeader}}
	<div class="legend-title">{{.HeaderTitle}}</div>
	<div class="legend-desc">{{.HeaderText}}</div>
	{{end}}
	{{range .Allergens}}
	<div class="legend-entry">
		{{if .IconURL}}<img class="legend-icon" src="{{.IconURL}}" alt="">{{end}}
		<div class="legend-item">{{.Number}}. {{.Title}}{{if .Description}}: {{.Description}}{{end}}</div>
	</div>
	{{end}}
	{{if .ShowFeaturesHeader}}<div class="features-title">{{.FeaturesHeader}}</div>{{end}}
	{{range .Features}}
	<div class="legend-entry">
		{{if .IconURL}}<img class="legend-icon" src="{{.IconURL}}" alt="">{{end}}
		<div class="feature-item">{{.Title}}</div>
	</div>
	{{end}}
</div>
{{end}}
{{if .EventsPath}}
<script>
new EventSource({{.EventsPath}}).addEventListener("layoutUpdated", function () {
	location.reload();
});
</script>
{{end}}
</body>
</html>
`
