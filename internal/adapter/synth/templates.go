package synth

// Templates are versioned data, not ad hoc concatenation: a new script shape
// gets a new constant and a bumped TemplateVersion, so artifacts on disk can
// be traced back to the template that produced them via the header comment.

const TemplateVersion = 1

// scriptTemplateV1 is the plain redirect script. The decision runs in the
// visitor's browser at load time: activity flag, date window against
// Date.now(), then a uniform draw in [0,100) against the percentage. A zero
// startMs/endMs means unbounded on that side.
const scriptTemplateV1 = `// linkcast v{{.TemplateVersion}} campaign={{.Slug}} rev={{.Revision}}
(function () {
    var policy = {
        active: {{.Active}},
        percentage: {{.Percentage}},
        startMs: {{.StartMs}},
        endMs: {{.EndMs}},
        url: "{{js .URL}}",
        delayMs: {{.DelayMs}},
        cleanUrl: {{.CleanURL}}
    };
    if (!policy.active) { return; }
    var now = Date.now();
    if (policy.startMs !== 0 && now < policy.startMs) { return; }
    if (policy.endMs !== 0 && now > policy.endMs) { return; }
    if (Math.random() * 100 >= policy.percentage) { return; }
    var target = policy.url;
    if (policy.cleanUrl) {
        target = target.split("#")[0].split("?")[0];
    }
    setTimeout(function () { window.location.href = target; }, policy.delayMs);
})();
`

// obfuscatedTemplateV1 wraps the plain script in a base64 eval shim. The
// runtime decision behavior is identical; only the textual shape changes.
const obfuscatedTemplateV1 = `// linkcast v{{.TemplateVersion}} campaign={{.Slug}} rev={{.Revision}}
(function(){var p="{{.Payload}}";(0,eval)(window.atob(p));})();
`

// loaderTemplateV1 is the unobfuscated loader stub. It only injects the
// slug-addressed script, so embed-site markup survives artifact
// regeneration.
const loaderTemplateV1 = `(function(){var s=document.createElement("script");s.src="/scripts/{{.Slug}}.js";s.async=true;(document.head||document.documentElement).appendChild(s);})();
`

// pageTemplateV1 is the standalone landing page: a fixed timed redirect
// without the percentage gate.
const pageTemplateV1 = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Name}}</title>
</head>
<body>
    <h1>Campaign: {{.Name}}</h1>
    <p>Tracking link: <a href="{{.URL}}" target="_blank" rel="noopener">{{.URL}}</a></p>
    <p>Redirect share: {{.Percentage}}%</p>
    <script>
        setTimeout(function () {
            window.location.href = {{.URL}};
        }, {{.DelayMs}});
    </script>
</body>
</html>
`
